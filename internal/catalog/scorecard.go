package catalog

import "legiscore/internal/model"

// Default returns the AI-policy bill scorecard. The content is fixed; bills
// are scored against the same questionnaire so results stay comparable
// across sessions and states.
func Default() *Catalog {
	return MustNew(defaultSections, defaultQuestions, defaultDependencies)
}

var defaultSections = []model.Section{
	{ID: model.SectionGeneral, Title: "General"},
	{ID: model.SectionAccountability, Title: "Accountability"},
	{ID: model.SectionBias, Title: "Bias"},
	{ID: model.SectionData, Title: "Data"},
	{ID: model.SectionInstitution, Title: "Institution"},
	{ID: model.SectionLabor, Title: "Labor"},
	{ID: model.SectionSubmit, Title: "Review & Submit"},
}

// defaultDependencies is the explicit adjacency table. Dependent questions
// are suppressed when every listed governor is answered "no" or "N/A".
var defaultDependencies = []Dependency{
	{QuestionID: "G1a", DependsOn: []string{"G1"}},
	{QuestionID: "G1b", DependsOn: []string{"G1"}},
	{QuestionID: "G1bi", DependsOn: []string{"G1"}},
	{QuestionID: "G2a", DependsOn: []string{"G2"}},
	{QuestionID: "G6a", DependsOn: []string{"G6"}},
	{QuestionID: "A11a", DependsOn: []string{"A9", "A10", "A11"}},
	{QuestionID: "A16a", DependsOn: []string{"A16"}},
	{QuestionID: "A28a", DependsOn: []string{"A28"}},
	{QuestionID: "A32a", DependsOn: []string{"A32"}},
	{QuestionID: "B4a", DependsOn: []string{"B4"}},
	{QuestionID: "D2a", DependsOn: []string{"D2"}},
	{QuestionID: "I1a", DependsOn: []string{"I1"}},
	{QuestionID: "I1b", DependsOn: []string{"I1"}},
}

func yn(section, id, prompt string) model.Question {
	return model.Question{ID: id, SectionID: section, Kind: model.QuestionKindYesNo, Prompt: prompt}
}

func single(section, id, prompt string, options ...string) model.Question {
	return model.Question{ID: id, SectionID: section, Kind: model.QuestionKindSingle, Prompt: prompt, Options: options}
}

func multi(section, id, prompt string, options ...string) model.Question {
	return model.Question{ID: id, SectionID: section, Kind: model.QuestionKindMulti, Prompt: prompt, Options: options}
}

var defaultQuestions = buildDefaultQuestions()

func buildDefaultQuestions() []model.Question {
	g := model.SectionGeneral
	a := model.SectionAccountability
	b := model.SectionBias
	d := model.SectionData
	i := model.SectionInstitution
	l := model.SectionLabor

	return []model.Question{
		// General
		yn(g, "G1", "Does the bill define artificial intelligence or an automated decision system?"),
		yn(g, "G1a", "Is the definition technology-neutral rather than tied to specific techniques?"),
		yn(g, "G1b", "Does the definition cover systems that assist, not only replace, human decision-making?"),
		yn(g, "G1bi", "Does the definition explicitly reach machine learning or generative models?"),
		yn(g, "G2", "Does the bill apply to government use of AI?"),
		multi(g, "G2a", "Which government bodies are covered?",
			"State agencies", "Local agencies", "Courts", "Law enforcement", "Education agencies"),
		yn(g, "G3", "Does the bill apply to private-sector use of AI?"),
		single(g, "G4", "What is the bill's primary mechanism?",
			"Regulation", "Study or task force", "Funding", "Prohibition", "Disclosure"),
		yn(g, "G5", "Does the bill create or extend any enforcement authority?"),
		yn(g, "G6", "Does the bill impose penalties for non-compliance?"),
		single(g, "G6a", "What kind of penalty applies?",
			"Civil fines", "Criminal penalties", "License or contract consequences", "Multiple kinds"),
		yn(g, "G7", "Does the bill preempt local AI regulation?"),
		yn(g, "G8", "Does the bill contain a sunset or reauthorization clause?"),

		// Accountability
		yn(a, "A1", "Are algorithmic impact assessments required before deployment?"),
		yn(a, "A2", "Must impact assessments be made public in whole or in part?"),
		yn(a, "A3", "Is pre-deployment testing of covered systems required?"),
		yn(a, "A4", "Is ongoing monitoring of deployed systems required?"),
		yn(a, "A5", "Are independent audits of covered systems required?"),
		yn(a, "A6", "Are auditors guaranteed access to systems, data, or documentation?"),
		yn(a, "A7", "Is reporting of incidents or failures required?"),
		yn(a, "A8", "Does the bill establish a public registry or inventory of covered systems?"),
		yn(a, "A9", "Must affected individuals be notified when an automated system is used?"),
		yn(a, "A10", "Are individuals entitled to an explanation of automated decisions?"),
		yn(a, "A11", "Is human review of consequential automated decisions required?"),
		single(a, "A11a", "Who may invoke notice, explanation, or review rights?",
			"Any affected individual", "Only adverse-decision subjects", "Designated representatives", "Unspecified"),
		yn(a, "A12", "Is there an appeal process for automated decisions?"),
		yn(a, "A13", "May individuals opt out of automated decision-making?"),
		yn(a, "A14", "Does the bill create a private right of action?"),
		yn(a, "A15", "Is the attorney general or an agency empowered to enforce?"),
		yn(a, "A16", "Does the bill classify systems by risk level?"),
		single(a, "A16a", "How is risk tiered?",
			"Two tiers", "Three or more tiers", "Case-by-case determination"),
		yn(a, "A17", "Are developers or deployers subject to documentation requirements?"),
		yn(a, "A18", "Are records required to be retained for a defined period?"),
		yn(a, "A19", "Are periodic transparency reports required?"),
		yn(a, "A20", "Must the use of AI be disclosed to the general public?"),
		yn(a, "A21", "Does the bill set procurement standards for AI systems?"),
		yn(a, "A22", "Are vendors accountable for systems supplied to government?"),
		yn(a, "A23", "Do obligations flow down to contractors and subcontractors?"),
		yn(a, "A24", "Are whistleblowers who report AI harms protected?"),
		yn(a, "A25", "Does the bill provide a compliance safe harbor?"),
		yn(a, "A26", "Are small businesses exempted or given lighter obligations?"),
		yn(a, "A27", "Are research or academic uses exempted?"),
		yn(a, "A28", "Is red-team or adversarial testing required?"),
		yn(a, "A28a", "Must testing results be reported to a regulator?"),
		yn(a, "A29", "Does the bill reference model evaluation standards or benchmarks?"),
		yn(a, "A30", "Is third-party certification of covered systems contemplated?"),
		yn(a, "A31", "Is post-deployment (post-market) surveillance required?"),
		yn(a, "A32", "Is a shutdown or override capability required for covered systems?"),
		yn(a, "A32a", "Must the override be exercisable by a human operator?"),

		// Bias
		yn(b, "B1", "Does the bill prohibit algorithmic discrimination?"),
		yn(b, "B2", "Are protected classes enumerated in the bill?"),
		yn(b, "B3", "Does the bill adopt a disparate-impact standard?"),
		yn(b, "B4", "Are bias audits of covered systems required?"),
		single(b, "B4a", "How often must bias audits occur?",
			"Before deployment only", "Annually", "Continuously or on significant change"),
		yn(b, "B5", "Is testing against demographic subgroups required?"),
		yn(b, "B6", "Are remediation steps required when bias is found?"),
		yn(b, "B7", "Must bias findings be reported publicly?"),
		yn(b, "B8", "Does the bill address accessibility for people with disabilities?"),

		// Data
		yn(d, "D1", "Does the bill govern data used to train covered systems?"),
		yn(d, "D2", "Is data minimization required?"),
		yn(d, "D2a", "Are retention limits specified for collected data?"),
		yn(d, "D3", "Is consent required for the use of personal data?"),
		yn(d, "D4", "Are individuals granted deletion rights?"),
		yn(d, "D5", "Are there restrictions on sensitive data categories?"),
		yn(d, "D6", "Is documentation of data provenance required?"),
		yn(d, "D7", "Does the bill impose data security requirements?"),
		yn(d, "D8", "Does the bill specifically address biometric data?"),

		// Institution
		yn(i, "I1", "Does the bill create a new governmental body for AI?"),
		single(i, "I1a", "What kind of body is created?",
			"Task force", "Commission", "Standing office", "Advisory board"),
		yn(i, "I1b", "Does the new body have a sunset date?"),
		yn(i, "I2", "Are membership or expertise requirements specified?"),
		yn(i, "I3", "Is public participation or comment provided for?"),
		yn(i, "I4", "Must the body or agency report to the legislature?"),
		yn(i, "I5", "Does the bill appropriate funding?"),
		yn(i, "I6", "Is dedicated staffing authorized?"),
		yn(i, "I7", "Is rulemaking authority granted?"),
		yn(i, "I8", "Is coordination with other agencies or states required?"),

		// Labor
		yn(l, "L1", "Does the bill address AI in the workplace?"),
		yn(l, "L2", "Are limits placed on electronic monitoring of workers?"),
		yn(l, "L3", "Must workers be notified of AI-driven management tools?"),
		yn(l, "L4", "Are automated employment decision tools regulated?"),
		yn(l, "L5", "Are collective bargaining rights over AI use addressed?"),
		yn(l, "L6", "Is assistance provided for workers displaced by automation?"),
		yn(l, "L7", "Is retraining or workforce development funded?"),
		yn(l, "L8", "Are workers granted rights over data collected about them?"),
	}
}
