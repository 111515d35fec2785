package raster

import "image"

// edgeMagnitude is the Sobel gradient magnitude above which a pixel counts
// as an edge, on the 0-255 scale.
const edgeMagnitude = 100.0

// EdgeDensity returns the fraction of pixels whose Sobel gradient magnitude
// exceeds the edge threshold. Near-uniform terrain (open water, unbroken
// canopy) scores close to zero.
func EdgeDensity(img image.Image) float64 {
	gray := Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	at := func(x, y int) float64 {
		return float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
	}

	edges := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			if gx*gx+gy*gy > edgeMagnitude*edgeMagnitude {
				edges++
			}
		}
	}
	return float64(edges) / float64(w*h)
}

// LowTexture reports whether img should be discarded as a negative sample.
func LowTexture(img image.Image, threshold float64) bool {
	return EdgeDensity(img) < threshold
}
