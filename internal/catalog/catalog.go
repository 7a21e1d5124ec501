package catalog

// Subject is one examinable module with its marks split.
type Subject struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	MaxTheory    int    `json:"max_theory"`
	MaxPractical int    `json:"max_practical"`
}

// MaxMarks is the combined maximum for the subject.
func (s Subject) MaxMarks() int {
	return s.MaxTheory + s.MaxPractical
}

// MinMarks is the pass threshold, 30% of the maximum.
func (s Subject) MinMarks() int {
	return (s.MaxMarks() * 30) / 100
}

// Certification describes an awarded title and the subjects it examines.
type Certification struct {
	Title    string    `json:"title"`
	Subjects []Subject `json:"subjects"`
}

// MaxMarks is the combined maximum across all subjects.
func (c Certification) MaxMarks() int {
	total := 0
	for _, s := range c.Subjects {
		total += s.MaxMarks()
	}
	return total
}

// MinMarks is the combined pass threshold (30% of maximum).
func (c Certification) MinMarks() int {
	return (c.MaxMarks() * 30) / 100
}

// HasSubject reports whether the given code is examined by this title.
func (c Certification) HasSubject(code string) bool {
	for _, s := range c.Subjects {
		if s.Code == code {
			return true
		}
	}
	return false
}

// Catalog holds the institute's course, duration and subject tables.
// It is built once at startup and never mutated afterwards; components
// receive it by reference.
type Catalog struct {
	courses        []string
	durations      []string
	qualifications []string
	subjects       map[string]Subject
	certifications map[string]Certification
}

func New() *Catalog {
	subjects := map[string]Subject{
		"CS-01": {Code: "CS-01", Name: "Basic Computer", MaxTheory: 100, MaxPractical: 0},
		"CS-02": {Code: "CS-02", Name: "Windows Application: MS Office", MaxTheory: 40, MaxPractical: 60},
		"CS-03": {Code: "CS-03", Name: "Operating System", MaxTheory: 40, MaxPractical: 60},
		"CS-04": {Code: "CS-04", Name: "Web Publisher: Internet Browsing", MaxTheory: 40, MaxPractical: 60},
		"CS-05": {Code: "CS-05", Name: "Computer Accountancy: Tally", MaxTheory: 40, MaxPractical: 60},
		"CS-06": {Code: "CS-06", Name: "Desktop Publishing: Photoshop", MaxTheory: 40, MaxPractical: 60},
		"CS-07": {Code: "CS-07", Name: "Computerized Accounting With Tally", MaxTheory: 40, MaxPractical: 60},
		"CS-08": {Code: "CS-08", Name: "Manual Accounting", MaxTheory: 40, MaxPractical: 60},
		"CS-09": {Code: "CS-09", Name: "Tally ERP 9 & Tally Prime", MaxTheory: 40, MaxPractical: 60},
	}

	pick := func(codes ...string) []Subject {
		list := make([]Subject, 0, len(codes))
		for _, code := range codes {
			list = append(list, subjects[code])
		}
		return list
	}

	certifications := map[string]Certification{}
	for _, c := range []Certification{
		{Title: "CERTIFICATION IN COMPUTER APPLICATION", Subjects: pick("CS-01", "CS-02", "CS-03", "CS-04")},
		{Title: "DIPLOMA IN COMPUTER APPLICATION", Subjects: pick("CS-01", "CS-02", "CS-03", "CS-04", "CS-05")},
		{Title: "ADVANCE DIPLOMA IN COMPUTER APPLICATION", Subjects: pick("CS-01", "CS-02", "CS-03", "CS-05", "CS-06")},
		{Title: "CERTIFICATION IN COMPUTER ACCOUNTANCY", Subjects: pick("CS-01", "CS-02", "CS-07", "CS-08")},
		{Title: "DIPLOMA IN COMPUTER ACCOUNTANCY", Subjects: pick("CS-01", "CS-02", "CS-07", "CS-08", "CS-09")},
	} {
		certifications[c.Title] = c
	}

	return &Catalog{
		courses: []string{
			"HTML, CSS, JS", "React", "MERN FullStack", "Autocad", "CorelDRAW",
			"Tally", "Premier Pro", "WordPress", "Computer Course", "MS Office", "PTE",
		},
		durations:      []string{"3 months", "6 months", "1 year"},
		qualifications: []string{"10th", "12th", "Graduated"},
		subjects:       subjects,
		certifications: certifications,
	}
}

// CertificationTitle derives the awarded title from course and duration.
// Computer Course and Tally award graded titles by duration; every other
// course awards its own name.
func (c *Catalog) CertificationTitle(course, duration string) string {
	switch course {
	case "Computer Course":
		switch duration {
		case "3 months":
			return "CERTIFICATION IN COMPUTER APPLICATION"
		case "6 months":
			return "DIPLOMA IN COMPUTER APPLICATION"
		case "1 year":
			return "ADVANCE DIPLOMA IN COMPUTER APPLICATION"
		}
	case "Tally":
		switch duration {
		case "3 months":
			return "CERTIFICATION IN COMPUTER ACCOUNTANCY"
		case "6 months":
			return "DIPLOMA IN COMPUTER ACCOUNTANCY"
		}
	}
	return course
}

// Certification looks up the subject set for an awarded title. Courses
// without an exam track (e.g. React) have no certification entry.
func (c *Catalog) Certification(title string) (Certification, bool) {
	cert, ok := c.certifications[title]
	return cert, ok
}

// Subject looks up a subject by code.
func (c *Catalog) Subject(code string) (Subject, bool) {
	s, ok := c.subjects[code]
	return s, ok
}

func (c *Catalog) ValidCourse(course string) bool {
	return contains(c.courses, course)
}

func (c *Catalog) ValidDuration(duration string) bool {
	return contains(c.durations, duration)
}

func (c *Catalog) ValidQualification(q string) bool {
	return contains(c.qualifications, q)
}

// Grade maps an average mark to a final grade.
func Grade(average float64) string {
	switch {
	case average >= 90:
		return "A"
	case average >= 80:
		return "B"
	case average >= 70:
		return "C"
	case average >= 60:
		return "D"
	default:
		return "F"
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
