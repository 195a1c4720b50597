package services

const sectionLimit = 4

type Section struct {
	Title    string               `json:"title"`
	Subtitle string               `json:"subtitle"`
	Cards    []RecommendationCard `json:"cards"`
}

// BuildSections assembles the themed groups shown under the primary
// result. A single usedIDs set is threaded through in a fixed order so
// no meal appears twice anywhere in the response; sections emptied by
// the dedup are dropped entirely.
func (e *RecommendationEngine) BuildSections(userID uint, usedIDs map[uint]struct{}) ([]Section, error) {
	if usedIDs == nil {
		usedIDs = map[uint]struct{}{}
	}

	type sectionQuery struct {
		title    string
		subtitle string
		fetch    func() ([]MealCandidate, error)
	}
	queries := []sectionQuery{
		{"Popular Picks", "Ranked by favorites", func() ([]MealCandidate, error) {
			return e.PopularMeals(userID, sectionLimit)
		}},
		{"Budget Friendly", "Good food at low prices", func() ([]MealCandidate, error) {
			return e.BudgetFriendly(userID, sectionLimit)
		}},
		{"Vegetarian", "Meat-free choices", func() ([]MealCandidate, error) {
			return e.VegetarianSpotlight(userID, sectionLimit)
		}},
		{"Mild & Light", "For a gentler day", func() ([]MealCandidate, error) {
			return e.MildFlavor(userID, sectionLimit)
		}},
		{"New Experiences", "Nothing you've favorited or reviewed", func() ([]MealCandidate, error) {
			return e.NewExperiences(userID, sectionLimit)
		}},
	}

	sections := make([]Section, 0, len(queries))
	for _, q := range queries {
		meals, err := q.fetch()
		if err != nil {
			return nil, err
		}
		cards := make([]RecommendationCard, 0, len(meals))
		for _, m := range meals {
			if _, taken := usedIDs[m.MealID]; taken {
				continue
			}
			usedIDs[m.MealID] = struct{}{}
			cards = append(cards, RecommendationCard{MealCandidate: m, Reason: q.subtitle})
		}
		if len(cards) == 0 {
			continue
		}
		sections = append(sections, Section{Title: q.title, Subtitle: q.subtitle, Cards: cards})
	}
	return sections, nil
}
