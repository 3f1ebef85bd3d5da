package lfx

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// absentValue is how nil upstream fields render in flattened text.
const absentValue = "None"

// Header is the CSV header row, in column order.
var Header = []string{"name", "repository", "industry", "description", "skills", "mentors", "programTerms"}

// Listing holds one decoded paginate response. It is never modified after
// construction, so every view below is recomputed from the same hits.
type Listing struct {
	hits      []json.RawMessage
	raw       []byte
	fetchedAt time.Time
}

// Len reports the number of hits in the listing.
func (l *Listing) Len() int {
	return len(l.hits)
}

// FetchedAt reports when the response was received.
func (l *Listing) FetchedAt() time.Time {
	return l.fetchedAt
}

// Raw returns a copy of the response body.
func (l *Listing) Raw() []byte {
	out := make([]byte, len(l.raw))
	copy(out, l.raw)
	return out
}

// Records projects every hit into a Record, preserving hit order.
func (l *Listing) Records() ([]Record, error) {
	records := make([]Record, 0, len(l.hits))
	for i, h := range l.hits {
		rec, err := mapHit(i, h)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Rows returns the header followed by one flattened row per record.
func (l *Listing) Rows() ([][]string, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, rec := range records {
		rows = append(rows, FlattenRecord(rec))
	}
	return rows, nil
}

// CSV renders Rows as RFC 4180 text with CRLF line endings.
func (l *Listing) CSV() (string, error) {
	rows, err := l.Rows()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("lfx: write csv: %w", err)
	}
	return buf.String(), nil
}

func mapHit(index int, raw json.RawMessage) (Record, error) {
	var h hit
	if err := json.Unmarshal(raw, &h); err != nil {
		field := "_source"
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			field = typeErr.Field
		}
		return Record{}, &SchemaError{Index: index, Field: field, Err: err}
	}

	src := h.Source
	if src == nil {
		return Record{}, &SchemaError{Index: index, Field: "_source"}
	}
	if src.ApprenticeNeeds == nil {
		return Record{}, &SchemaError{Index: index, Field: "apprenticeNeeds"}
	}
	if len(src.ProgramTerms) == 0 {
		return Record{}, &SchemaError{Index: index, Field: "programTerms"}
	}

	skills := make([]string, len(src.ApprenticeNeeds.Skills))
	copy(skills, src.ApprenticeNeeds.Skills)

	mentors := make([]Mentor, 0, len(src.ApprenticeNeeds.Mentors))
	for _, m := range src.ApprenticeNeeds.Mentors {
		mentors = append(mentors, Mentor{
			Name:         m.Name.clone(),
			Email:        m.Email.clone(),
			Introduction: m.Introduction.clone(),
		})
	}

	term := src.ProgramTerms[0]

	return Record{
		Name:        src.Name,
		Repository:  src.RepoLink,
		Industry:    src.Industry,
		Description: src.Description,
		Skills:      skills,
		Mentors:     mentors,
		ProgramTerms: ProgramTerms{
			ActiveUsers: term.ActiveUsers.clone(),
			Name:        term.Name.clone(),
			Active:      term.Active.clone(),
		},
	}, nil
}

// FlattenRecord renders a record as one CSV row in Header order. Absent
// top-level text renders as an empty cell.
func FlattenRecord(rec Record) []string {
	return []string{
		deref(rec.Name),
		deref(rec.Repository),
		deref(rec.Industry),
		deref(rec.Description),
		strings.Join(rec.Skills, ", "),
		FormatMentors(rec.Mentors),
		FormatProgramTerms(rec.ProgramTerms),
	}
}

// FormatMentors joins mentors as "<name> (<email>): <introduction>" separated by "; ".
func FormatMentors(mentors []Mentor) string {
	parts := make([]string, 0, len(mentors))
	for _, m := range mentors {
		parts = append(parts, fmt.Sprintf("%s (%s): %s", m.Name, m.Email, m.Introduction))
	}
	return strings.Join(parts, "; ")
}

// FormatProgramTerms renders the term summary as a single display string.
func FormatProgramTerms(t ProgramTerms) string {
	return fmt.Sprintf("Active Users: %s, Name: %s, Active: %s", t.ActiveUsers, t.Name, t.Active)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
