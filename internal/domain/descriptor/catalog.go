package descriptor

// CatalogVersion changes whenever an entry is added, removed or its
// algorithm changes. It feeds Registry.Fingerprint and therefore the cache
// namespace.
const CatalogVersion = "2024.10.1"

// Catalog returns the built-in descriptor table in declaration order.
func Catalog() []Entry {
	return []Entry{
		// constitutional
		{Name: "MolWt", Description: "average molecular weight", Compute: molWt},
		{Name: "HeavyAtomMolWt", Description: "average molecular weight ignoring hydrogens", Compute: heavyAtomMolWt},
		{Name: "ExactMolWt", Description: "monoisotopic molecular weight", Compute: exactMolWt},
		{Name: "HeavyAtomCount", Description: "number of non-hydrogen atoms", Compute: heavyAtoms},
		{Name: "NumAtoms", Description: "number of atoms including hydrogens", Compute: numAtoms},
		{Name: "NumHeteroatoms", Description: "number of atoms other than C and H", Compute: numHeteroatoms},
		{Name: "NumValenceElectrons", Description: "number of valence electrons", Compute: numValenceElectrons},
		{Name: "NumRadicalElectrons", Description: "number of unpaired electrons", Compute: numRadicalElectrons},
		{Name: "NOCount", Description: "number of nitrogens and oxygens", Compute: noCount},
		{Name: "NHOHCount", Description: "number of hydrogens on N and O", Compute: nhohCount},
		{Name: "FractionCSP3", Description: "fraction of sp3 carbons", Compute: fractionCSP3},
		{Name: "FormalCharge", Description: "net formal charge", Compute: formalCharge},

		// hydrogen bonding and flexibility
		{Name: "NumHDonors", Description: "hydrogen bond donors", Compute: numHDonors},
		{Name: "NumHAcceptors", Description: "hydrogen bond acceptors", Compute: numHAcceptors},
		{Name: "NumRotatableBonds", Description: "rotatable bonds", Compute: numRotatableBonds},

		// rings
		{Name: "RingCount", Description: "rings in the smallest set of smallest rings", Compute: ringCounter()},
		{Name: "NumAromaticRings", Compute: ringCounter(aromaticRing)},
		{Name: "NumAliphaticRings", Compute: ringCounter(aliphaticRing)},
		{Name: "NumSaturatedRings", Compute: ringCounter(saturatedRing)},
		{Name: "NumAromaticCarbocycles", Compute: ringCounter(aromaticRing, carbocycle)},
		{Name: "NumAromaticHeterocycles", Compute: ringCounter(aromaticRing, heterocycle)},
		{Name: "NumAliphaticCarbocycles", Compute: ringCounter(aliphaticRing, carbocycle)},
		{Name: "NumAliphaticHeterocycles", Compute: ringCounter(aliphaticRing, heterocycle)},
		{Name: "NumSaturatedCarbocycles", Compute: ringCounter(saturatedRing, carbocycle)},
		{Name: "NumSaturatedHeterocycles", Compute: ringCounter(saturatedRing, heterocycle)},

		// topological
		{Name: "HallKierAlpha", Description: "Hall-Kier alpha shape correction", Compute: hallKierAlpha},
		{Name: "Kappa1", Compute: kappa1},
		{Name: "Kappa2", Compute: kappa2},
		{Name: "Kappa3", Compute: kappa3},
		{Name: "Chi0", Description: "zero order connectivity index", Compute: chi0},
		{Name: "Chi1", Description: "first order connectivity index", Compute: chi1},
		{Name: "Chi0v", Description: "zero order valence connectivity index", Compute: chi0v},
		{Name: "Chi1v", Description: "first order valence connectivity index", Compute: chi1v},
		{Name: "BalabanJ", Description: "Balaban distance connectivity index", Compute: balabanJ},
		{Name: "WienerIndex", Description: "sum of topological distances", Compute: wienerIndex},
		{Name: "Zagreb1", Compute: zagreb1},
		{Name: "Zagreb2", Compute: zagreb2},

		// surface and lipophilicity
		{Name: "MolLogP", Description: "Wildman-Crippen logP", Compute: molLogP},
		{Name: "MolMR", Description: "Wildman-Crippen molar refractivity", Compute: molMR},
		{Name: "TPSA", Description: "topological polar surface area (N, O)", Compute: tpsa},

		// fragments
		{Name: "fr_benzene", Description: "benzene rings", Compute: frBenzene},
		{Name: "fr_halogen", Description: "halogen atoms", Compute: frHalogen},
		{Name: "fr_C_O", Description: "carbonyl groups", Compute: frCO},
		{Name: "fr_Al_OH", Description: "aliphatic hydroxyls", Compute: frAlOH},
		{Name: "fr_Ar_OH", Description: "aromatic hydroxyls", Compute: frArOH},
		{Name: "fr_NH2", Description: "primary amines", Compute: frNH2},
		{Name: "fr_nitrile", Description: "nitriles", Compute: frNitrile},
		{Name: "fr_ether", Description: "ether oxygens", Compute: frEther},
	}
}

//Personal.AI order the ending
