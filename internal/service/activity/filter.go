package activity

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// predicate decides whether an activity passes one preference dimension.
// It must keep activities that lack the data it inspects.
type predicate func(a *domain.Activity) bool

// FilterActivities narrows list to the activities matching prefs. Filters run
// in a fixed order: interests, child ages, location, budget. A nil prefs or
// an empty dimension excludes nothing. The input slice is not modified.
func FilterActivities(list []domain.Activity, prefs *domain.Preferences) []domain.Activity {
	out := slices.Clone(list)
	if prefs == nil {
		return out
	}

	pipeline := []predicate{
		byInterests(prefs.Interests),
		byChildAges(prefs.ChildAges),
		byLocation(prefs.Location),
		byBudget(prefs.MaxPrice),
	}
	for _, keep := range pipeline {
		if keep == nil {
			continue
		}
		out = slices.DeleteFunc(out, func(a domain.Activity) bool { return !keep(&a) })
	}
	return out
}

func byInterests(interests []string) predicate {
	interests = slices.DeleteFunc(slices.Clone(interests), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	if len(interests) == 0 {
		return nil
	}
	return func(a *domain.Activity) bool {
		text := a.Title
		if a.Description != nil {
			text += " " + *a.Description
		}
		for _, in := range interests {
			if domain.ContainsNormalized(text, in) {
				return true
			}
		}
		return false
	}
}

func byChildAges(ages []int) predicate {
	if len(ages) == 0 {
		return nil
	}
	return func(a *domain.Activity) bool {
		text := a.Title
		if a.Description != nil {
			text += " " + *a.Description
		}
		lo, hi, ok := parseAgeRange(text)
		if !ok {
			return true
		}
		for _, age := range ages {
			if age >= lo && age <= hi {
				return true
			}
		}
		return false
	}
}

func byLocation(location string) predicate {
	if strings.TrimSpace(location) == "" {
		return nil
	}
	return func(a *domain.Activity) bool {
		if a.Location == nil || strings.TrimSpace(*a.Location) == "" {
			return true
		}
		return domain.ContainsNormalized(*a.Location, location) ||
			domain.ContainsNormalized(location, *a.Location)
	}
}

func byBudget(maxPrice *int) predicate {
	if maxPrice == nil {
		return nil
	}
	return func(a *domain.Activity) bool {
		return a.Price == nil || *a.Price <= *maxPrice
	}
}

var (
	// "3-7 лет", "5–12 years"
	ageRangePattern = regexp.MustCompile(`(?i)(?:^|[^\d])(\d{1,2})\s*[-–]\s*(\d{1,2})\s*(?:лет|года|год|years|year|yrs|y\.o\.)`)
	// "6+", "0+"
	ageFloorPattern = regexp.MustCompile(`(?:^|[^\d])(\d{1,2})\s*\+`)
)

// parseAgeRange finds an age restriction in free text.
func parseAgeRange(text string) (lo, hi int, ok bool) {
	if m := ageRangePattern.FindStringSubmatch(text); m != nil {
		lo, _ = strconv.Atoi(m[1])
		hi, _ = strconv.Atoi(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi, true
	}
	if m := ageFloorPattern.FindStringSubmatch(text); m != nil {
		lo, _ = strconv.Atoi(m[1])
		return lo, math.MaxInt, true
	}
	return 0, 0, false
}
