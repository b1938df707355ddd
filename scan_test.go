package sqlarray_test

import (
	"strings"

	. "gopkg.in/check.v1"

	"github.com/canonical/sqlarray"
	"github.com/canonical/sqlarray/mapper"
	"github.com/canonical/sqlarray/qualifier"
)

type scanSuite struct{}

var _ = Suite(&scanSuite{})

func (s *scanSuite) TestScanRows(c *C) {
	db, err := personDB()
	c.Assert(err, IsNil)
	defer db.Close()

	cfg := sqlarray.NewConfig()

	type result struct {
		name     string
		id       int
		scores   []int
		tags     map[string]struct{}
		nickname *string
	}
	freddie := "freddie"
	expected := []result{{
		name:     "Fred",
		id:       30,
		scores:   []int{10, 20, 30},
		tags:     map[string]struct{}{"admin": {}, "staff": {}},
		nickname: &freddie,
	}, {
		name:   "Mark",
		id:     20,
		scores: []int{},
		tags:   map[string]struct{}{"staff": {}},
	}, {
		name: "Mary",
		id:   40,
	}}

	rows, err := db.Query("SELECT name, id, scores, tags, nickname FROM person WHERE name <> 'James' ORDER BY rowid")
	c.Assert(err, IsNil)
	defer rows.Close()

	var got []result
	for rows.Next() {
		var r result
		err := rows.Scan(&r.name, cfg.MustScanner(&r.id), cfg.MustScanner(&r.scores), cfg.MustScanner(&r.tags), cfg.MustScanner(&r.nickname))
		c.Assert(err, IsNil)
		got = append(got, r)
	}
	c.Assert(rows.Err(), IsNil)
	c.Assert(got, DeepEquals, expected)
}

func (s *scanSuite) TestScanNullElements(c *C) {
	db, err := personDB()
	c.Assert(err, IsNil)
	defer db.Close()

	cfg := sqlarray.NewConfig()
	var scores [2]int64
	var tags map[string]struct{}
	var raw []any
	row := db.QueryRow("SELECT scores, tags, tags FROM person WHERE name = 'James'")
	err = row.Scan(cfg.MustScanner(&scores), cfg.MustScanner(&tags), cfg.MustScanner(&raw))
	c.Assert(err, IsNil)

	c.Assert(scores, Equals, [2]int64{7, 8})
	// NULL elements map to the zero value of the element type.
	c.Assert(tags, DeepEquals, map[string]struct{}{"on call": {}, "": {}})
	c.Assert(raw, DeepEquals, []any{"on call", nil})
}

func (s *scanSuite) TestScanConversionError(c *C) {
	db, err := personDB()
	c.Assert(err, IsNil)
	defer db.Close()

	cfg := sqlarray.NewConfig()
	var nickname *string
	err = db.QueryRow("SELECT nickname FROM person WHERE name = 'James'").Scan(cfg.MustScanner(&nickname))
	c.Assert(err, ErrorMatches, `.*cannot build \*string: multiple values for optional`)
	c.Assert(nickname, IsNil)

	var ids []int
	err = db.QueryRow("SELECT name FROM person WHERE name = 'Fred'").Scan(cfg.MustScanner(&ids))
	c.Assert(err, ErrorMatches, `.*cannot iterate over text "Fred": not an array literal`)
}

func (s *scanSuite) TestScanQualified(c *C) {
	db, err := personDB()
	c.Assert(err, IsNil)
	defer db.Close()

	cfg := sqlarray.NewConfig()
	c.Assert(cfg.Mappers.Register(qualifier.For[string]("upper"), mapper.Func(func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, nil
		}
		return strings.ToUpper(s), nil
	})), IsNil)

	var tags []string
	err = db.QueryRow("SELECT tags FROM person WHERE name = 'Fred'").Scan(cfg.MustScanner(&tags, "upper"))
	c.Assert(err, IsNil)
	c.Assert(tags, DeepEquals, []string{"ADMIN", "STAFF"})
}

func (s *scanSuite) TestScannerErrors(c *C) {
	cfg := sqlarray.NewConfig()
	var x []int
	var p *[]int

	_, err := cfg.Scanner(nil)
	c.Assert(err, ErrorMatches, "need pointer, got nil")
	_, err = cfg.Scanner(x)
	c.Assert(err, ErrorMatches, "need pointer, got slice")
	_, err = cfg.Scanner(p)
	c.Assert(err, ErrorMatches, "need non-nil pointer")

	type unknown struct{}
	var u []unknown
	_, err = cfg.Scanner(&u)
	c.Assert(err, ErrorMatches, `no mapper registered for type \[\]sqlarray_test.unknown`)
	_, err = cfg.Scanner(&x, "upper")
	c.Assert(err, ErrorMatches, `no mapper registered for type \{upper\} \[\]int`)

	c.Assert(func() { cfg.MustScanner(&u) }, PanicMatches, `no mapper registered for type .*`)
}

func (s *scanSuite) TestScanScalar(c *C) {
	cfg := sqlarray.NewConfig()
	var n int16
	scanner := cfg.MustScanner(&n)
	c.Assert(scanner.Scan(int64(12)), IsNil)
	c.Assert(n, Equals, int16(12))
}

func (s *scanSuite) TestScanCustomElements(c *C) {
	split := sqlarray.ElementsFunc(func(raw any) ([]any, error) {
		var elems []any
		for _, e := range strings.Split(raw.(string), ";") {
			elems = append(elems, e)
		}
		return elems, nil
	})
	cfg := sqlarray.NewConfig(sqlarray.WithElements(split))

	var tags map[string]bool
	c.Assert(cfg.MustScanner(&tags).Scan("red;green;red"), IsNil)
	c.Assert(tags, DeepEquals, map[string]bool{"red": true, "green": true})

	var words []string
	c.Assert(cfg.MustScanner(&words).Scan("a;b"), IsNil)
	c.Assert(words, DeepEquals, []string{"a", "b"})
}
