package models

import (
	"strconv"
	"strings"
)

// JobListing: открытая вакансия из статического каталога.
type JobListing struct {
	ID           int      `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Department   string   `yaml:"department" json:"department"`
	Location     string   `yaml:"location" json:"location"`
	Type         string   `yaml:"type" json:"type"`
	Experience   string   `yaml:"experience" json:"experience"`
	Salary       string   `yaml:"salary" json:"salary"`
	Remote       string   `yaml:"remote" json:"remote"`
	Posted       string   `yaml:"posted" json:"posted"`
	Description  string   `yaml:"description" json:"description"`
	Requirements []string `yaml:"requirements" json:"requirements"`
	Benefits     []string `yaml:"benefits" json:"benefits"`
}

// ExperienceYears возвращает ведущее число из строки вида "5+ years".
func (j *JobListing) ExperienceYears() int {
	s := strings.TrimSpace(j.Experience)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	years, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return years
}

// Project: работа из портфолио агентства.
type Project struct {
	ID                  int      `yaml:"id" json:"id"`
	Name                string   `yaml:"name" json:"name"`
	Client              string   `yaml:"client" json:"client,omitempty"`
	Stack               string   `yaml:"stack" json:"stack"`
	Year                string   `yaml:"year" json:"year"`
	ShortDescription    string   `yaml:"shortDescription" json:"shortDescription"`
	FullDescription     string   `yaml:"fullDescription" json:"fullDescription,omitempty"`
	FullDescriptionHTML string   `yaml:"-" json:"fullDescriptionHtml,omitempty"`
	Image               string   `yaml:"image" json:"image"`
	Gallery             []string `yaml:"gallery" json:"gallery,omitempty"`
	Website             string   `yaml:"website" json:"website,omitempty"`
	Duration            string   `yaml:"duration" json:"duration,omitempty"`
	Role                string   `yaml:"role" json:"role,omitempty"`
	Technologies        []string `yaml:"technologies" json:"technologies,omitempty"`
	Challenge           string   `yaml:"challenge" json:"challenge,omitempty"`
	Solution            string   `yaml:"solution" json:"solution,omitempty"`
	Features            []string `yaml:"features" json:"features,omitempty"`
	Results             []string `yaml:"results" json:"results,omitempty"`
}

// Summary: карточка для списка галереи без полного описания.
func (p Project) Summary() Project {
	p.FullDescription = ""
	p.FullDescriptionHTML = ""
	p.Challenge = ""
	p.Solution = ""
	p.Features = nil
	p.Results = nil
	return p
}

// PrimaryStack: первая технология из строки "React + Node".
func (p *Project) PrimaryStack() string {
	first, _, _ := strings.Cut(p.Stack, " + ")
	return strings.TrimSpace(first)
}
