package capture

import "image"

// Luminance converts src to a single-channel raster using the ITU-R 601-2
// luma transform L = R*299/1000 + G*587/1000 + B*114/1000. dst is reused when
// it has the right size; otherwise a buffer is taken from the pool.
func Luminance(dst *image.Gray, src *image.RGBA) *image.Gray {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		dst = acquireGray(image.Rect(0, 0, w, h))
	}
	for y := 0; y < h; y++ {
		srow := src.Pix[(y+b.Min.Y-src.Rect.Min.Y)*src.Stride+(b.Min.X-src.Rect.Min.X)*4:]
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range drow {
			i := x * 4
			r, g, bl := uint32(srow[i]), uint32(srow[i+1]), uint32(srow[i+2])
			drow[x] = uint8((r*299 + g*587 + bl*114) / 1000)
		}
	}
	return dst
}
