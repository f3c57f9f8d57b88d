package hierarchy

import (
	"sort"
	"strings"
)

// UMLSMapping is the term material a UMLS concept contributes to one ICD code.
type UMLSMapping struct {
	Synonyms     []string `json:"synonyms"`
	Aliases      []string `json:"aliases"`
	ConceptNames []string `json:"concept_names"`
}

// SearchResult is one hit from a code or concept search.
type SearchResult struct {
	Code        string  `json:"icd_code"`
	Name        string  `json:"icd_name"`
	MatchedTerm string  `json:"matched_term,omitempty"`
	Similarity  float64 `json:"similarity,omitempty"`
	Source      string  `json:"source,omitempty"`
	Level       int     `json:"level,omitempty"`
}

// Search finds codes whose code or name contains the query, case-insensitive.
func (m *Manager) Search(query string, limit int) []SearchResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	var results []SearchResult
	for _, code := range m.order {
		entry := m.entries[code]
		if strings.Contains(strings.ToLower(code), q) || strings.Contains(strings.ToLower(entry.Name), q) {
			results = append(results, SearchResult{Code: code, Name: entry.Name, Level: entry.Level})
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results
}

// SemanticSearch finds codes related to a free-text medical concept: UMLS term
// substring hits first, then name similarity against the hierarchy, then one
// round of expansion through the synonym table with a damped score. Results
// are deduplicated by code, best similarity first.
func (m *Manager) SemanticSearch(concept string, threshold float64, maxResults int) []SearchResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := m.semanticSearch(concept, threshold)

	for _, synonym := range medicalSynonyms[strings.ToLower(concept)] {
		for _, r := range m.semanticSearch(synonym, threshold) {
			r.MatchedTerm = concept + " (via " + synonym + ")"
			r.Similarity = r.Similarity * 0.9
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	seen := make(map[string]struct{})
	unique := results[:0]
	for _, r := range results {
		if _, ok := seen[r.Code]; ok {
			continue
		}
		seen[r.Code] = struct{}{}
		unique = append(unique, r)
		if maxResults > 0 && len(unique) >= maxResults {
			break
		}
	}
	return unique
}

func (m *Manager) semanticSearch(concept string, threshold float64) []SearchResult {
	q := strings.ToLower(concept)
	var results []SearchResult

	for code, mapping := range m.umls {
		terms := append(append(append([]string{}, mapping.Synonyms...), mapping.Aliases...), mapping.ConceptNames...)
		for _, term := range terms {
			if strings.Contains(strings.ToLower(term), q) {
				if entry, ok := m.query(code); ok {
					results = append(results, SearchResult{
						Code:        entry.Code,
						Name:        entry.Name,
						MatchedTerm: term,
						Similarity:  0.9,
						Source:      "umls",
					})
				}
				break
			}
		}
	}

	for _, code := range m.order {
		entry := m.entries[code]
		similarity := stringSimilarity(q, strings.ToLower(entry.Name))
		if similarity < threshold {
			continue
		}
		duplicate := false
		for _, r := range results {
			if r.Code == code {
				duplicate = true
				break
			}
		}
		if !duplicate {
			results = append(results, SearchResult{
				Code:        code,
				Name:        entry.Name,
				MatchedTerm: entry.Name,
				Similarity:  similarity,
				Source:      "icd_hierarchy",
			})
		}
	}

	return results
}

// stringSimilarity scores containment at a flat 0.8, otherwise Jaccard
// overlap of the word sets.
func stringSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

var medicalSynonyms = map[string][]string{
	"heart attack":          {"myocardial infarction", "mi", "acute myocardial infarction", "cardiac infarction"},
	"myocardial infarction": {"heart attack", "mi", "acute myocardial infarction", "cardiac infarction"},
	"mi":                    {"myocardial infarction", "heart attack", "acute myocardial infarction"},
	"chest pain":            {"thoracic pain", "precordial pain", "angina"},
	"shortness of breath":   {"dyspnea", "difficulty breathing", "breathlessness"},
	"dyspnea":               {"shortness of breath", "difficulty breathing", "breathlessness"},
	"hypertension":          {"high blood pressure", "htn", "elevated blood pressure"},
	"htn":                   {"hypertension", "high blood pressure"},
	"diabetes":              {"dm", "diabetes mellitus", "diabetic"},
	"dm":                    {"diabetes", "diabetes mellitus"},
	"pneumonia":             {"lung infection", "pulmonary infection", "respiratory infection"},
	"fever":                 {"pyrexia", "elevated temperature", "hyperthermia"},
	"headache":              {"cephalgia", "head pain", "migraine"},
	"nausea":                {"queasiness", "feeling sick", "stomach upset"},
	"vomiting":              {"emesis", "throwing up", "regurgitation"},
}
