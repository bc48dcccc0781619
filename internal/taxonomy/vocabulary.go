package taxonomy

// Fixed vocabularies the sub-classifiers resolve against. Entries are the
// canonical spellings the shelter system stores; fuzzy matching absorbs
// the clinics' abbreviations and typos.

var vaccineVocabulary = []string{
	"DHLPP",
	"DHPP",
	"Bordetella",
	"Leptospirosis",
	"Parainfluenza",
	"Leptospira",
	"Giardia",
	"Torigen",
}

var testVocabulary = []string{
	"Biopsy",
	"Bloodwork",
	"Cytology",
	"Opthamalogy",
	"Fecal",
	"Fungal",
	"Glucose",
	"Heartworm",
	"Lactate",
	"Lyme",
	"Parvo",
	"Radiology",
	"Skin Scrape",
	"Ultrasound",
	"Wood's Light",
	"Urine",
	"Tonometry",
	"Echocardiogram",
}

var medicationVocabulary = []string{
	"Adequan",
	"Amikacin",
	"Aminocaproic",
	"Amoxicillin",
	"Amoxiclav",
	"Ampicillin",
	"Apoquel",
	"Bedinvetmab",
	"Bravecto",
	"Bupivacaine",
	"Buprenorphine",
	"Capromorelin",
	"Capstar",
	"Carprofen",
	"Cefazolin",
	"Cefovecin",
	"Cefpoderm",
	"Cerenia",
	"Clavacillin",
	"Clavamax",
	"Clindamycin",
	"Codeine",
	"Cyclosporine",
	"Cytopoint",
	"Denamarin",
	"Dexamethasone",
	"Dextrose",
	"Diphenhydramine",
	"Dorzolamide",
	"Doxycycline",
	"Enrofloxacin",
	"Famotidine",
	"Fentanyl",
	"Furosemide",
	"Gabapentin",
	"Galliprant",
	"Gentamicin",
	"Heartgard",
	"Hydromorphone",
	"Insulin",
	"Interceptor Plus",
	"Ketoconazole",
	"Latanoprost",
	"Levothyroxine",
	"Librela",
	"Marbofloxacin",
	"Meclizine",
	"Meloxicam",
	"Methadone",
	"Metronidazole",
	"Miconazole",
	"Mometamax",
	"Moxidectin",
	"Neopolybacitracin",
	"Nexgard",
	"Optixcare",
	"Panacur",
	"Pantoprazole",
	"Pimobendan",
	"Polyflex",
	"Ponazuril",
	"Prazpyrfeb",
	"Prednisone",
	"Pyrantel",
	"Revolution",
	"Rimadyl",
	"Sentinel",
	"Sevoflurane",
	"Simparica",
	"Simplicef",
	"Sucralfate",
	"Sulfadimethoxine",
	"Tacrolimus",
	"Tobramycin",
	"Trazodone",
	"Tresaderm",
	"Triamcinolone",
	"Ursodiol",
	"Electrolytes",
	"Vitamin",
}
