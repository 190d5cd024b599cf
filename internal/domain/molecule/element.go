package molecule

// Element holds the periodic-table data the parser and descriptors need.
type Element struct {
	Symbol       string
	AtomicNumber int
	// AverageMass is the standard atomic weight.
	AverageMass float64
	// MonoisotopicMass is the mass of the most abundant isotope.
	MonoisotopicMass float64
	// OuterElectrons is the number of valence-shell electrons.
	OuterElectrons int
	// Valences lists allowed neutral valences in ascending order. Empty means
	// the element has no fixed valence (transition metals) and is not checked.
	Valences []int
}

var elements = []Element{
	{"H", 1, 1.008, 1.00782503207, 1, []int{1}},
	{"He", 2, 4.003, 4.00260325415, 2, []int{0}},
	{"Li", 3, 6.941, 7.016004548, 1, []int{1}},
	{"Be", 4, 9.012, 9.012182201, 2, []int{2}},
	{"B", 5, 10.812, 11.0093055, 3, []int{3}},
	{"C", 6, 12.011, 12.0, 4, []int{4}},
	{"N", 7, 14.007, 14.00307400478, 5, []int{3}},
	{"O", 8, 15.999, 15.99491461956, 6, []int{2}},
	{"F", 9, 18.998, 18.99840320, 7, []int{1}},
	{"Ne", 10, 20.18, 19.9924401754, 8, []int{0}},
	{"Na", 11, 22.99, 22.98976928, 1, []int{1}},
	{"Mg", 12, 24.305, 23.98504170, 2, []int{2}},
	{"Al", 13, 26.982, 26.98153863, 3, []int{3}},
	{"Si", 14, 28.086, 27.9769265325, 4, []int{4}},
	{"P", 15, 30.974, 30.97376163, 5, []int{3, 5, 7}},
	{"S", 16, 32.067, 31.97207100, 6, []int{2, 4, 6}},
	{"Cl", 17, 35.453, 34.96885268, 7, []int{1}},
	{"Ar", 18, 39.948, 39.9623831225, 8, []int{0}},
	{"K", 19, 39.098, 38.96370668, 1, []int{1}},
	{"Ca", 20, 40.078, 39.96259098, 2, []int{2}},
	{"Mn", 25, 54.938, 54.9380451, 7, nil},
	{"Fe", 26, 55.845, 55.9349375, 8, nil},
	{"Co", 27, 58.933, 58.9331950, 9, nil},
	{"Ni", 28, 58.693, 57.9353429, 10, nil},
	{"Cu", 29, 63.546, 62.9295975, 11, nil},
	{"Zn", 30, 65.39, 63.9291422, 2, nil},
	{"Ge", 32, 72.61, 73.9211778, 4, []int{4}},
	{"As", 33, 74.922, 74.9215965, 5, []int{3, 5, 7}},
	{"Se", 34, 78.96, 79.9165213, 6, []int{2, 4, 6}},
	{"Br", 35, 79.904, 78.9183371, 7, []int{1}},
	{"Kr", 36, 83.8, 83.911507, 8, []int{0}},
	{"Sn", 50, 118.71, 119.9021947, 4, []int{2, 4}},
	{"Sb", 51, 121.76, 120.9038157, 5, []int{3, 5, 7}},
	{"Te", 52, 127.6, 129.9062244, 6, []int{2, 4, 6}},
	{"I", 53, 126.904, 126.904473, 7, []int{1, 3, 5}},
	{"Xe", 54, 131.29, 131.9041535, 8, []int{0}},
	{"Pt", 78, 195.08, 194.9647911, 10, nil},
	{"Au", 79, 196.967, 196.9665687, 11, nil},
	{"Hg", 80, 200.59, 201.970643, 2, nil},
	{"Pb", 82, 207.2, 207.9766521, 4, []int{2, 4}},
}

var (
	elementsBySymbol = make(map[string]*Element, len(elements))
	elementsByNumber = make(map[int]*Element, len(elements))
)

func init() {
	for i := range elements {
		e := &elements[i]
		elementsBySymbol[e.Symbol] = e
		elementsByNumber[e.AtomicNumber] = e
	}
}

// LookupElement returns the element with the given symbol, case-sensitive.
func LookupElement(symbol string) (*Element, bool) {
	e, ok := elementsBySymbol[symbol]
	return e, ok
}

// ElementByNumber returns the element with atomic number z.
func ElementByNumber(z int) (*Element, bool) {
	e, ok := elementsByNumber[z]
	return e, ok
}

// chargedValences returns the allowed valences of an atom of element e
// carrying charge, using the isoelectronic element (N+ behaves like C, O- like
// F). nil means the valence is unconstrained.
func chargedValences(e *Element, charge int) []int {
	if charge == 0 {
		return e.Valences
	}
	iso, ok := elementsByNumber[e.AtomicNumber-charge]
	if !ok || len(e.Valences) == 0 {
		return nil
	}
	return iso.Valences
}

// organicSubset lists the atoms that may be written without brackets.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// aromaticSymbols maps lowercase aromatic symbols to their element symbol.
// The two-letter forms are only legal inside brackets.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S",
	"se": "Se", "as": "As", "te": "Te",
}

//Personal.AI order the ending
