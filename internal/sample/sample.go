// Package sample generates realistic attendance sheets for demos and tests.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/bxcodec/faker/v4"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
)

// Layout of a generated sheet (0-based).
const (
	TitleRow  = 0
	DayRow    = 1
	HeaderRow = 2
	FirstRow  = 3

	IDCol    = 1
	NameCol  = 2
	RoleCol  = 3
	FirstDay = 4
)

var roles = []string{
	"курьер",
	"кассир",
	"кладовщик",
	"администратор",
	"повар",
	"стажёр",
}

var marks = []string{"1", "1", "1", "1", "0", "", "0.5"}

// Params controls generation.
type Params struct {
	// Start is moved back to the closest Saturday.
	Start  time.Time
	Weeks  int
	People int
	// Seed makes marks, roles and identifiers reproducible; 0 picks one.
	Seed uint64
}

// Person is one generated employee.
type Person struct {
	ID    int64
	Name  string
	Role  string
	Marks []string
}

// Sheet is a generated attendance sheet.
type Sheet struct {
	Start  time.Time
	Weeks  int
	People []Person
}

// Generate creates a sheet with random people and marks.
func Generate(p Params) Sheet {
	seed := p.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	start := p.Start
	if start.IsZero() {
		start = time.Now()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	start = start.AddDate(0, 0, -int((start.Weekday()+1)%7))

	days := p.Weeks * models.DaysPerWeek
	seen := make(map[int64]bool, p.People)
	people := make([]Person, p.People)
	for i := range people {
		id := 100000000 + rng.Int64N(900000000)
		for seen[id] {
			id++
		}
		seen[id] = true

		m := make([]string, days)
		for d := range m {
			m[d] = marks[rng.IntN(len(marks))]
		}
		people[i] = Person{
			ID:    id,
			Name:  faker.Name(),
			Role:  roles[rng.IntN(len(roles))],
			Marks: m,
		}
	}
	return Sheet{Start: start, Weeks: p.Weeks, People: people}
}

// Day returns the date of day column i.
func (s Sheet) Day(i int) time.Time { return s.Start.AddDate(0, 0, i) }

// Row returns the grid row of person i.
func (s Sheet) Row(i int) int { return FirstRow + i }

// Rows renders the sheet as text cells. The month is named once, left of
// the first day; later months follow from the day numbers.
func (s Sheet) Rows() [][]string {
	width := FirstDay + s.Weeks*models.DaysPerWeek
	rows := make([][]string, FirstRow+len(s.People))
	for i := range rows {
		rows[i] = make([]string, width)
	}

	rows[TitleRow][0] = fmt.Sprintf("Табель учёта рабочего времени с %s", s.Start.Format("02.01.2006"))
	rows[DayRow][RoleCol] = parser.MonthName(s.Start.Month())
	rows[HeaderRow][IDCol] = "Telegram ID"
	rows[HeaderRow][NameCol] = "ФИО"
	rows[HeaderRow][RoleCol] = "Должность"
	for i := 0; i < s.Weeks*models.DaysPerWeek; i++ {
		rows[DayRow][FirstDay+i] = strconv.Itoa(s.Day(i).Day())
		rows[HeaderRow][FirstDay+i] = parser.Weekdays[i%models.DaysPerWeek]
	}

	for i, p := range s.People {
		r := rows[s.Row(i)]
		r[0] = strconv.Itoa(i + 1)
		r[IDCol] = strconv.FormatInt(p.ID, 10)
		r[NameCol] = p.Name
		r[RoleCol] = p.Role
		copy(r[FirstDay:], p.Marks)
	}
	return rows
}

// WriteCSV writes the sheet as comma-separated text.
func (s Sheet) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(s.Rows()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
