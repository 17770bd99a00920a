package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldToGrayPercentileMirrorsAxis(t *testing.T) {
	const nz, nr = 6, 4
	field := make([]complex128, nz*nr)
	for iz := 0; iz < nz; iz++ {
		for ir := 0; ir < nr; ir++ {
			field[iz*nr+ir] = complex(float64(iz*nr+ir), 0)
		}
	}

	img, err := FieldToGrayPercentile(field, nz, nr, 0, 100)
	require.NoError(t, err)

	assert.Equal(t, nz, img.Bounds().Dx())
	assert.Equal(t, 2*nr, img.Bounds().Dy())

	// Rows mirror around the axis between nr-1 and nr.
	for iz := 0; iz < nz; iz++ {
		for ir := 0; ir < nr; ir++ {
			above := img.Pix[(nr-1-ir)*img.Stride+iz]
			below := img.Pix[(nr+ir)*img.Stride+iz]
			assert.Equal(t, above, below, "iz=%d ir=%d", iz, ir)
		}
	}

	// Full percentile range: the largest magnitude maps to 255, the
	// smallest to 0.
	assert.Equal(t, uint8(0), img.Pix[(nr-1)*img.Stride+0])
	assert.Equal(t, uint8(255), img.Pix[0*img.Stride+nz-1])
}

func TestFieldToGrayPercentileRejectsBadArguments(t *testing.T) {
	field := make([]complex128, 12)
	_, err := FieldToGrayPercentile(field, 5, 4, 0, 100)
	assert.Error(t, err)
	_, err = FieldToGrayPercentile(field, 3, 4, 90, 10)
	assert.Error(t, err)
}

func TestStepTicks(t *testing.T) {
	ticks := StepTicks{Step: 0.5, Format: "%.1f"}.Ticks(0, 2)
	require.Len(t, ticks, 5)
	assert.Equal(t, "0.0", ticks[0].Label)
	assert.Equal(t, "2.0", ticks[4].Label)
}
