package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificationTitle(t *testing.T) {
	c := New()

	assert.Equal(t, "CERTIFICATION IN COMPUTER APPLICATION", c.CertificationTitle("Computer Course", "3 months"))
	assert.Equal(t, "DIPLOMA IN COMPUTER APPLICATION", c.CertificationTitle("Computer Course", "6 months"))
	assert.Equal(t, "ADVANCE DIPLOMA IN COMPUTER APPLICATION", c.CertificationTitle("Computer Course", "1 year"))
	assert.Equal(t, "CERTIFICATION IN COMPUTER ACCOUNTANCY", c.CertificationTitle("Tally", "3 months"))
	assert.Equal(t, "DIPLOMA IN COMPUTER ACCOUNTANCY", c.CertificationTitle("Tally", "6 months"))

	// Tally has no one-year track; the course name is the title.
	assert.Equal(t, "Tally", c.CertificationTitle("Tally", "1 year"))
	assert.Equal(t, "React", c.CertificationTitle("React", "3 months"))
}

func TestSubjectMarks(t *testing.T) {
	c := New()

	basic, ok := c.Subject("CS-01")
	require.True(t, ok)
	assert.Equal(t, 100, basic.MaxTheory)
	assert.Equal(t, 0, basic.MaxPractical)
	assert.Equal(t, 100, basic.MaxMarks())
	assert.Equal(t, 30, basic.MinMarks())

	office, ok := c.Subject("CS-02")
	require.True(t, ok)
	assert.Equal(t, 40, office.MaxTheory)
	assert.Equal(t, 60, office.MaxPractical)
	assert.Equal(t, 30, office.MinMarks())
}

func TestCertificationSubjectSets(t *testing.T) {
	c := New()

	cert, ok := c.Certification("CERTIFICATION IN COMPUTER APPLICATION")
	require.True(t, ok)
	require.Len(t, cert.Subjects, 4)
	assert.Equal(t, 400, cert.MaxMarks())
	assert.Equal(t, 120, cert.MinMarks())

	diploma, ok := c.Certification("DIPLOMA IN COMPUTER ACCOUNTANCY")
	require.True(t, ok)
	require.Len(t, diploma.Subjects, 5)
	assert.True(t, diploma.HasSubject("CS-09"))
	assert.False(t, diploma.HasSubject("CS-04"))

	advance, ok := c.Certification("ADVANCE DIPLOMA IN COMPUTER APPLICATION")
	require.True(t, ok)
	assert.True(t, advance.HasSubject("CS-06"))
	assert.False(t, advance.HasSubject("CS-04"))

	_, ok = c.Certification("React")
	assert.False(t, ok)
}

func TestValidation(t *testing.T) {
	c := New()

	assert.True(t, c.ValidCourse("Computer Course"))
	assert.False(t, c.ValidCourse("Cooking"))
	assert.True(t, c.ValidDuration("6 months"))
	assert.False(t, c.ValidDuration("2 weeks"))
	assert.True(t, c.ValidQualification("Graduated"))
	assert.False(t, c.ValidQualification("PhD"))
}

func TestGrade(t *testing.T) {
	assert.Equal(t, "A", Grade(90))
	assert.Equal(t, "B", Grade(89.9))
	assert.Equal(t, "C", Grade(75))
	assert.Equal(t, "D", Grade(60))
	assert.Equal(t, "F", Grade(59.9))
}
