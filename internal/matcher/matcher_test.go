package matcher

import (
	"testing"

	"github.com/khrees2412/hireboard/pkg/models"
)

func TestCalculateMatchScore(t *testing.T) {
	seeker := &models.JobSeeker{Industry: "Tech", PreferredLocation: "Cairo"}
	skills := []*models.Skill{{Skill: "Go", YearsExperience: 4}, {Skill: "SQL", YearsExperience: 2}}

	tests := []struct {
		name string
		job  *models.Vacancy
		want float64
	}{
		{
			name: "perfect fit",
			job:  &models.Vacancy{Title: "Backend", RequiredSkills: "go, sql", Industry: "tech", Location: "Cairo", MinExperience: 3},
			want: 1.0,
		},
		{
			name: "half the skills, short on experience",
			job:  &models.Vacancy{Title: "Backend", RequiredSkills: "sql", Industry: "Tech", Location: "Cairo", MinExperience: 4},
			// skills 0.5*0.4 + experience 0.5*0.3 + 0.15 + 0.15
			want: 0.2 + 0.15 + 0.15 + 0.15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMatchScore(tt.job, seeker, skills)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateMatchScoreWithoutSkills(t *testing.T) {
	seeker := &models.JobSeeker{Industry: "Tech", PreferredLocation: "Cairo"}
	job := &models.Vacancy{Industry: "Tech", Location: "Cairo"}

	if got := CalculateMatchScore(job, seeker, nil); got != 1.0 {
		t.Errorf("expected normalized score 1.0, got %v", got)
	}
}

func TestMatchLocation(t *testing.T) {
	tests := []struct {
		job, pref string
		want      float64
	}{
		{"Cairo", "cairo", 1.0},
		{"Remote", "Alexandria", 0.8},
		{"New Cairo City", "Cairo Governorate", 0.6},
		{"Giza West", "West Giza", 0.6},
		{"Berlin", "Cairo", 0.3},
		{"", "Cairo", 0.5},
	}
	for _, tt := range tests {
		if got := matchLocation(tt.job, tt.pref); got != tt.want {
			t.Errorf("matchLocation(%q, %q) = %v, want %v", tt.job, tt.pref, got, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	seeker := &models.JobSeeker{Industry: "Tech", PreferredLocation: "Cairo"}
	skills := []*models.Skill{{Skill: "go", YearsExperience: 2}}
	jobs := []*models.Vacancy{
		{ID: 1, RequiredSkills: "java", Industry: "Finance", Location: "Berlin"},
		{ID: 2, RequiredSkills: "go", Industry: "Tech", Location: "Cairo"},
		{ID: 3, RequiredSkills: "go", Industry: "Tech", Location: "Cairo"},
	}

	ranked := Rank(jobs, seeker, skills, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(ranked))
	}
	if ranked[0].Job.ID != 2 || ranked[1].Job.ID != 3 {
		t.Errorf("expected ids 2,3 got %d,%d", ranked[0].Job.ID, ranked[1].Job.ID)
	}

	if all := Rank(jobs, seeker, skills, 0); len(all) != 3 || all[2].Job.ID != 1 {
		t.Errorf("expected all three with job 1 last, got %+v", all)
	}
}
