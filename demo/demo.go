package main

import (
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/canonical/sqlarray"
	"github.com/canonical/sqlarray/mapper"
	"github.com/canonical/sqlarray/qualifier"
)

// Rota is the order in which a team takes turns on call.
type Rota struct {
	turns []string
}

func (r Rota) String() string {
	return strings.Join(r.turns, " -> ")
}

type Team struct {
	ID      uuid.UUID
	Name    string
	Rooms   []int
	Members map[string]struct{}
	Lead    *string
	Rota    Rota
}

func example() error {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	defer sqldb.Close()

	// Array columns are stored both as JSON and as PostgreSQL literals.
	_, err = sqldb.Exec(`
		CREATE TABLE team (
			id text,
			name text,
			rooms text,
			members text,
			lead text,
			rota text
		);`)
	if err != nil {
		return err
	}

	teams := []struct {
		name, rooms, members, lead, rota string
	}{
		{"engineering", "[101, 102]", "{alice,bob,carol}", `["alice"]`, "{bob,carol,alice}"},
		{"marketing", "[201]", "{dave,erin,dave}", "[]", "{erin,dave}"},
	}
	for _, t := range teams {
		_, err := sqldb.Exec("INSERT INTO team VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), t.name, t.rooms, t.members, t.lead, t.rota)
		if err != nil {
			return err
		}
	}

	cfg := sqlarray.NewConfig()

	// Rota is a container: the collector registry says how to build it and
	// what its elements are.
	err = cfg.Collectors.Register(reflect.TypeOf(Rota{}), reflect.TypeOf(""), func(elems []any) (any, error) {
		r := Rota{turns: make([]string, len(elems))}
		for i, e := range elems {
			r.turns[i] = e.(string)
		}
		return r, nil
	})
	if err != nil {
		return err
	}

	// Members of a rota are shown capitalised. The qualifier is carried from
	// the container down to each element.
	err = cfg.Mappers.Register(qualifier.For[string]("title"), mapper.Func(func(raw any) (any, error) {
		s, _ := raw.(string)
		if s == "" {
			return s, nil
		}
		return strings.ToUpper(s[:1]) + s[1:], nil
	}))
	if err != nil {
		return err
	}

	rows, err := sqldb.Query("SELECT id, name, rooms, members, lead, rota FROM team ORDER BY name")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		t := Team{}
		err := rows.Scan(
			cfg.MustScanner(&t.ID),
			&t.Name,
			cfg.MustScanner(&t.Rooms),
			cfg.MustScanner(&t.Members),
			cfg.MustScanner(&t.Lead),
			cfg.MustScanner(&t.Rota, "title"),
		)
		if err != nil {
			return err
		}

		members := make([]string, 0, len(t.Members))
		for m := range t.Members {
			members = append(members, m)
		}
		sort.Strings(members)
		lead := "nobody"
		if t.Lead != nil {
			lead = *t.Lead
		}
		fmt.Printf("%s (%s) uses rooms %v.\n", t.Name, t.ID, t.Rooms)
		fmt.Printf("  members: %s, led by %s\n", strings.Join(members, ", "), lead)
		fmt.Printf("  on call: %s\n", t.Rota)
	}
	return rows.Err()
}

func main() {
	err := example()
	if err != nil {
		panic(err)
	}
}
