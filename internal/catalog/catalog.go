package catalog

import (
	"fmt"

	"legiscore/internal/model"
)

// Dependency declares that a question is governed by one or more other
// questions. The dependent is suppressed (force-filled "N/A") whenever a
// governor is answered "no" or "N/A"; with several governors, one
// non-suppressing answer keeps the dependent open.
type Dependency struct {
	QuestionID string
	DependsOn  []string
}

// Catalog is the immutable scorecard definition: ordered sections, ordered
// questions per section, and the dependency table. Constructed once at
// startup and injected into services.
type Catalog struct {
	sections   []model.Section
	bySection  map[string][]model.Question
	byID       map[string]model.Question
	dependents map[string][]string // governor -> direct dependent IDs
	governors  map[string][]string // dependent -> governor IDs
	order      []string            // all question IDs in section order
}

// New builds and validates a catalog. Returns an error for duplicate or
// dangling IDs, a misplaced submit section, or a cyclic dependency table;
// any of these is a fatal configuration error, not a runtime condition.
func New(sections []model.Section, questions []model.Question, deps []Dependency) (*Catalog, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("catalog: no sections")
	}
	if sections[len(sections)-1].ID != model.SectionSubmit {
		return nil, fmt.Errorf("catalog: last section must be %q, got %q", model.SectionSubmit, sections[len(sections)-1].ID)
	}

	c := &Catalog{
		sections:   append([]model.Section(nil), sections...),
		bySection:  make(map[string][]model.Question),
		byID:       make(map[string]model.Question, len(questions)),
		dependents: make(map[string][]string),
		governors:  make(map[string][]string),
	}

	sectionIDs := make(map[string]bool, len(sections))
	for _, s := range sections {
		if sectionIDs[s.ID] {
			return nil, fmt.Errorf("catalog: duplicate section %q", s.ID)
		}
		sectionIDs[s.ID] = true
	}

	for _, q := range questions {
		if q.ID == model.SentinelBillName {
			return nil, fmt.Errorf("catalog: question ID %q is reserved", q.ID)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate question %q", q.ID)
		}
		if !sectionIDs[q.SectionID] {
			return nil, fmt.Errorf("catalog: question %q references unknown section %q", q.ID, q.SectionID)
		}
		if q.SectionID == model.SectionSubmit {
			return nil, fmt.Errorf("catalog: question %q placed in submit section", q.ID)
		}
		c.byID[q.ID] = q
		c.bySection[q.SectionID] = append(c.bySection[q.SectionID], q)
	}

	for _, s := range sections {
		for _, q := range c.bySection[s.ID] {
			c.order = append(c.order, q.ID)
		}
	}

	for _, d := range deps {
		if _, ok := c.byID[d.QuestionID]; !ok {
			return nil, fmt.Errorf("catalog: dependency on unknown question %q", d.QuestionID)
		}
		for _, gov := range d.DependsOn {
			if _, ok := c.byID[gov]; !ok {
				return nil, fmt.Errorf("catalog: question %q depends on unknown question %q", d.QuestionID, gov)
			}
			if gov == d.QuestionID {
				return nil, fmt.Errorf("catalog: question %q depends on itself", d.QuestionID)
			}
			c.dependents[gov] = append(c.dependents[gov], d.QuestionID)
			c.governors[d.QuestionID] = append(c.governors[d.QuestionID], gov)
		}
	}

	if cyclic := c.findCycle(); cyclic != "" {
		return nil, fmt.Errorf("catalog: dependency cycle through %q", cyclic)
	}
	return c, nil
}

// MustNew is New for compiled-in catalogs; panics on configuration errors
func MustNew(sections []model.Section, questions []model.Question, deps []Dependency) *Catalog {
	c, err := New(sections, questions, deps)
	if err != nil {
		panic(err)
	}
	return c
}

// findCycle runs a three-color DFS over governor -> dependent edges and
// returns an ID on the first cycle found, or "".
func (c *Catalog) findCycle() string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(c.byID))
	var visit func(id string) string
	visit = func(id string) string {
		color[id] = gray
		for _, dep := range c.dependents[id] {
			switch color[dep] {
			case gray:
				return dep
			case white:
				if hit := visit(dep); hit != "" {
					return hit
				}
			}
		}
		color[id] = black
		return ""
	}
	for id := range c.byID {
		if color[id] == white {
			if hit := visit(id); hit != "" {
				return hit
			}
		}
	}
	return ""
}

// Sections returns the ordered section list, submit always last
func (c *Catalog) Sections() []model.Section {
	return append([]model.Section(nil), c.sections...)
}

// Questions returns the ordered questions for a section. Unknown and submit
// section IDs yield an empty slice, not an error.
func (c *Catalog) Questions(sectionID string) []model.Question {
	return append([]model.Question(nil), c.bySection[sectionID]...)
}

// Question looks up a single question by ID
func (c *Catalog) Question(id string) (model.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// QuestionIDs returns every question ID in section order, submit excluded
func (c *Catalog) QuestionIDs() []string {
	return append([]string(nil), c.order...)
}

// Dependents returns the IDs directly governed by the given question
func (c *Catalog) Dependents(questionID string) []string {
	return append([]string(nil), c.dependents[questionID]...)
}

// TransitiveDependents returns every ID reachable through the dependency
// table from the given question, breadth-first. Cascades must propagate
// through chains of any depth, not just direct dependents.
func (c *Catalog) TransitiveDependents(questionID string) []string {
	var out []string
	seen := map[string]bool{questionID: true}
	queue := append([]string(nil), c.dependents[questionID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		queue = append(queue, c.dependents[id]...)
	}
	return out
}

// Governors returns the IDs whose answers control the given question's
// visibility; empty for ungoverned questions.
func (c *Catalog) Governors(questionID string) []string {
	return append([]string(nil), c.governors[questionID]...)
}

// FilterVisible returns the subset of questions whose governing dependency is
// currently satisfied, preserving order. Ungoverned questions are always
// visible; a governed question stays visible while at least one governor's
// answer is not "no"/"N/A" (an unanswered governor does not suppress).
func (c *Catalog) FilterVisible(questions []model.Question, answers model.AnswerMap) []model.Question {
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		govs := c.governors[q.ID]
		if len(govs) == 0 {
			out = append(out, q)
			continue
		}
		for _, gov := range govs {
			if !answers[gov].IsSuppressing() {
				out = append(out, q)
				break
			}
		}
	}
	return out
}
