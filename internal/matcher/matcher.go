package matcher

import (
	"sort"
	"strings"

	"github.com/khrees2412/hireboard/pkg/models"
)

// Match is a vacancy with its score for one seeker
type Match struct {
	Job   *models.Vacancy
	Score float64
}

// CalculateMatchScore calculates how well a vacancy fits a seeker's profile and skills
// Returns a score between 0.0 and 1.0
func CalculateMatchScore(job *models.Vacancy, seeker *models.JobSeeker, skills []*models.Skill) float64 {
	score := 0.0
	weight := 0.0

	// Factor 1: Skills match (40% weight)
	if len(skills) > 0 {
		score += matchSkills(job, skills) * 0.4
		weight += 0.4

		// Factor 2: Experience against the job minimum (30% weight)
		score += matchExperience(job, skills) * 0.3
		weight += 0.3
	}

	// Factor 3: Location preference (15% weight)
	score += matchLocation(job.Location, seeker.PreferredLocation) * 0.15
	weight += 0.15

	// Factor 4: Industry preference (15% weight)
	score += matchIndustry(job.Industry, seeker.Industry) * 0.15
	weight += 0.15

	// Normalize if we didn't have all factors
	return score / weight
}

// Rank scores every vacancy and returns at most limit matches, best first.
// Equal scores keep the lower job id first. A limit <= 0 returns all.
func Rank(jobs []*models.Vacancy, seeker *models.JobSeeker, skills []*models.Skill, limit int) []Match {
	matches := make([]Match, 0, len(jobs))
	for _, job := range jobs {
		matches = append(matches, Match{Job: job, Score: CalculateMatchScore(job, seeker, skills)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Job.ID < matches[j].Job.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// jobText is what skill names are looked up in
func jobText(job *models.Vacancy) string {
	return strings.ToLower(job.RequiredSkills + " " + job.Title + " " + job.Description)
}

// matchSkills checks how many seeker skills appear in the job
func matchSkills(job *models.Vacancy, skills []*models.Skill) float64 {
	text := jobText(job)
	if strings.TrimSpace(text) == "" {
		return 0.5 // Neutral if the job says nothing
	}

	matched := 0
	for _, skill := range skills {
		if strings.Contains(text, strings.ToLower(skill.Skill)) {
			matched++
		}
	}

	return float64(matched) / float64(len(skills))
}

// matchExperience compares the seeker's deepest relevant skill with the job minimum
func matchExperience(job *models.Vacancy, skills []*models.Skill) float64 {
	if job.MinExperience == 0 {
		return 1.0
	}

	text := jobText(job)
	best := 0
	for _, skill := range skills {
		if strings.Contains(text, strings.ToLower(skill.Skill)) && skill.YearsExperience > best {
			best = skill.YearsExperience
		}
	}

	if best >= job.MinExperience {
		return 1.0
	}
	return float64(best) / float64(job.MinExperience)
}

// matchLocation checks if job location matches the seeker's preference
func matchLocation(jobLocation, preferred string) float64 {
	if jobLocation == "" || preferred == "" {
		return 0.5 // Neutral if no location specified
	}

	jobLocLower := strings.ToLower(jobLocation)
	prefLower := strings.ToLower(preferred)

	// Check for exact match
	if strings.Contains(jobLocLower, prefLower) || strings.Contains(prefLower, jobLocLower) {
		return 1.0
	}

	// Check for remote
	if strings.Contains(jobLocLower, "remote") {
		return 0.8
	}

	// Partial match (same city/region)
	for _, jobPart := range strings.Fields(jobLocLower) {
		for _, prefPart := range strings.Fields(prefLower) {
			if len(jobPart) > 3 && len(prefPart) > 3 && jobPart == prefPart {
				return 0.6
			}
		}
	}

	return 0.3 // Low match if no overlap
}

func matchIndustry(jobIndustry, preferred string) float64 {
	if jobIndustry == "" || preferred == "" {
		return 0.5
	}
	if strings.EqualFold(jobIndustry, preferred) {
		return 1.0
	}
	return 0.2
}
