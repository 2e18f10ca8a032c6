package analysis

// rawEN is shorthand for the common case of an English raw-regex language
// entry backed by the source "<category>_en".
func rawEN(category string) map[string]LanguageSpec {
	return map[string]LanguageSpec{
		"en": {Strategy: StrategyRaw, Source: category + "_en"},
	}
}

// multilingual wires the full language set a translated category carries:
// en raw regex, cs single-lemma, fi ambiguous-lemma, el hybrid with a literal
// pattern side, pt enhanced regex.  The lemma languages keep raw-regex
// fallback sources for when their backend is unavailable.
func multilingual(category string) map[string]LanguageSpec {
	return map[string]LanguageSpec{
		"en": {Strategy: StrategyRaw, Source: category + "_en"},
		"cs": {
			Strategy:       StrategyLemma,
			Source:         category + "_cs",
			FallbackSource: category + "_cs_fallback",
		},
		"fi": {
			Strategy:       StrategyAmbiguousLemma,
			Source:         category + "_fi",
			FallbackSource: category + "_fi_fallback",
		},
		"el": {
			Strategy:       StrategyHybrid,
			Source:         category + "_el",
			PatternsSource: category + "_el_patterns",
			FallbackSource: category + "_el_fallback",
		},
		"pt": {Strategy: StrategyEnhanced, Source: category + "_pt"},
	}
}

// DefaultCategories returns the built-in category registry.  Order is the
// output order of Analyse, so it is part of the public contract and must stay
// stable across releases.
func DefaultCategories() []CategorySpec {
	return []CategorySpec{
		{Key: "emotionallyChargedAdjectives", Languages: multilingual("emotionallyChargedAdjectives")},
		{Key: "intensifyingAdverbs", Languages: rawEN("intensifyingAdverbs")},
		{Key: "historicallyDerogatoryTerms", Languages: rawEN("historicallyDerogatoryTerms")},
		{Key: "mitigators", Languages: rawEN("mitigators")},
		{Key: "oversimplifiedGroupLabels", Languages: rawEN("oversimplifiedGroupLabels")},
		{Key: "euphemisms", Languages: rawEN("euphemisms")},
		{Key: "dysphemisms", Languages: rawEN("dysphemisms")},
		{Key: "eventLabeling", Languages: rawEN("eventLabeling")},
		{Key: "absoluteTerms", Languages: rawEN("absoluteTerms")},
		{Key: "concessiveConnectives", Languages: multilingual("concessiveConnectives")},
		{Key: "chargedSemanticFields", Languages: multilingual("chargedSemanticFields")},
		{Key: "framingByTime", Languages: multilingual("framingByTime")},
		{Key: "overgeneralizations", Languages: multilingual("overgeneralizations")},

		// Surface categories work on any language.
		{Key: "capitalisation", Surface: SurfaceCapitalisation, NoiseCeiling: 0.30},
		{Key: "ellipses", Surface: SurfaceEllipses},
		{Key: "exclamationQuestionMarks", Surface: SurfacePunctuationRuns},
	}
}
