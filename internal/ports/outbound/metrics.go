package outbound

// EngineMetrics receives observations from the planning services
type EngineMetrics interface {
	ObserveCompliance(doshaType string, overallScore int)
	ObserveSuggestion(mealType string, items int, complianceScore int)
	ObserveCandidatePool(compatible, fallback int)
	AddUnresolvedReferences(n int)
	ObserveCacheLookup(entity string, hits, misses int)
}
