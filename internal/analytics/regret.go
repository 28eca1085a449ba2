package analytics

import "sort"

// missing sentiment counts as the middle of the scale
const neutralSentiment = 50

const (
	BucketTotalRegret       = "total_regret"
	BucketMostlyRegret      = "mostly_regret"
	BucketMixed             = "mixed"
	BucketWorthIt           = "worth_it"
	BucketAbsolutelyWorthIt = "absolutely_worth_it"
)

// SentimentBucket is one bar of the fixed five-bucket histogram.
type SentimentBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategorySentiment is a category's mean sentiment, most regretted
// first when sorted.
type CategorySentiment struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Average      float64 `json:"average"`
	Count        int     `json:"count"`
}

// TitleSentiment groups expenses by exact title text.
type TitleSentiment struct {
	Title   string  `json:"title"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RegretReport bundles the sentiment aggregations for a range.
type RegretReport struct {
	Histogram     []SentimentBucket   `json:"histogram"`
	ByCategory    []CategorySentiment `json:"by_category"`
	MostRegretted []TitleSentiment    `json:"most_regretted"`
	MostWorthIt   []TitleSentiment    `json:"most_worth_it"`
}

// Regret computes sentiment analytics over expenses in the range. An
// expense that was never rated counts as 50 (mixed); the substitution
// happens at read time only.
func (s *Service) Regret(start, end int64) (*RegretReport, error) {
	expenses, err := s.repo.ExpensesInRange(start, end)
	if err != nil {
		return nil, err
	}

	report := &RegretReport{
		Histogram: []SentimentBucket{
			{Label: BucketTotalRegret},
			{Label: BucketMostlyRegret},
			{Label: BucketMixed},
			{Label: BucketWorthIt},
			{Label: BucketAbsolutelyWorthIt},
		},
		MostRegretted: []TitleSentiment{},
		MostWorthIt:   []TitleSentiment{},
	}

	type acc struct {
		name  string
		sum   int
		count int
	}
	byCategory := map[string]*acc{}
	byTitle := map[string]*acc{}

	for _, row := range expenses {
		score := neutralSentiment
		if row.Sentiment != nil {
			score = *row.Sentiment
		}

		report.Histogram[histogramIndex(score)].Count++

		cat := byCategory[row.CategoryID]
		if cat == nil {
			cat = &acc{name: row.CategoryName}
			byCategory[row.CategoryID] = cat
		}
		cat.sum += score
		cat.count++

		title := byTitle[row.Title]
		if title == nil {
			title = &acc{name: row.Title}
			byTitle[row.Title] = title
		}
		title.sum += score
		title.count++
	}

	for categoryID, a := range byCategory {
		report.ByCategory = append(report.ByCategory, CategorySentiment{
			CategoryID:   categoryID,
			CategoryName: a.name,
			Average:      float64(a.sum) / float64(a.count),
			Count:        a.count,
		})
	}
	sort.Slice(report.ByCategory, func(i, j int) bool {
		if report.ByCategory[i].Average != report.ByCategory[j].Average {
			return report.ByCategory[i].Average < report.ByCategory[j].Average
		}
		return report.ByCategory[i].CategoryName < report.ByCategory[j].CategoryName
	})

	titles := make([]TitleSentiment, 0, len(byTitle))
	for _, a := range byTitle {
		titles = append(titles, TitleSentiment{Title: a.name, Average: float64(a.sum) / float64(a.count), Count: a.count})
	}

	sort.Slice(titles, func(i, j int) bool {
		if titles[i].Average != titles[j].Average {
			return titles[i].Average < titles[j].Average
		}
		return titles[i].Title < titles[j].Title
	})
	report.MostRegretted = append(report.MostRegretted, titles[:min(5, len(titles))]...)

	sort.Slice(titles, func(i, j int) bool {
		if titles[i].Average != titles[j].Average {
			return titles[i].Average > titles[j].Average
		}
		return titles[i].Title < titles[j].Title
	})
	report.MostWorthIt = append(report.MostWorthIt, titles[:min(5, len(titles))]...)

	return report, nil
}

// histogramIndex maps a score to its fixed bucket:
// <20, <40, <60, <80, >=80.
func histogramIndex(score int) int {
	switch {
	case score < 20:
		return 0
	case score < 40:
		return 1
	case score < 60:
		return 2
	case score < 80:
		return 3
	default:
		return 4
	}
}
