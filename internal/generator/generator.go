package generator

// UniqueGenerator creates classic-grid puzzle definitions with a unique
// solution, using the rule engine for uniqueness checks while carving.
type UniqueGenerator struct {
	Size int
	BoxW int
	BoxH int
}

// NewUniqueGenerator wires a generator for size x size grids with
// boxW x boxH boxes.
func NewUniqueGenerator(size, boxW, boxH int) *UniqueGenerator {
	return &UniqueGenerator{Size: size, BoxW: boxW, BoxH: boxH}
}
