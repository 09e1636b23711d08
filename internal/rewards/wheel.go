package rewards

import "math/rand"

const (
	sectorCount   = 6
	sectorDegrees = 360 / sectorCount

	// A spin always makes at least five full turns before the offset so the
	// animation looks like a real wheel, never a nudge.
	minFullTurns = 5
	maxFullTurns = 8
)

// sectorPoints maps each 60-degree sector to its prize. The credited amount
// and the visual rotation both derive from the same rotation value, so they
// cannot disagree.
var sectorPoints = [sectorCount]int64{20, 30, 40, 50, 60, 70}

// SectorForRotation returns the sector index the pointer lands on after
// rotating totalDegrees.
func SectorForRotation(totalDegrees int) int {
	landed := totalDegrees % 360
	return landed / sectorDegrees
}

// PointsForSector returns the fixed prize for a sector index.
func PointsForSector(sector int) int64 {
	return sectorPoints[sector]
}

func rollRotation() int {
	turns := minFullTurns + rand.Intn(maxFullTurns-minFullTurns+1)
	return turns*360 + rand.Intn(360)
}
