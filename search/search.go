// Package search contains types and helpers to work with [FHIR Search].
//
// Parameters keep their insertion order: the query string a client sends
// lists parameters exactly as the caller added them.
//
// [FHIR Search]: https://hl7.org/fhir/search.html
package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/healthwire/fhir-sdk-go/model"
)

// Result contains the result of a search operation. Resources preserve
// the order the server returned them in.
type Result struct {
	Resources []model.Resource
	Included  []model.Resource
	Next      Cursor
}

// Cursor references where the server shall pick up querying additional
// results for multi-page queries.
type Cursor string

// Options represents the result-modifying parameters of a search.
type Options struct {
	// Includes specifies the related resources to include in the results.
	Includes []string
	// Count defines the maximum number of results to return per page.
	Count int
	// Cursor allows for pagination of large result sets.
	Cursor Cursor
	// Sort lists sort keys; prefix a key with "-" for descending order.
	Sort []string
	// Summary requests a server-side subset, e.g. "true" or "count".
	Summary string
}

// ParameterKey represents a key for a search parameter, consisting of a
// name and an optional modifier.
type ParameterKey struct {
	Name     string
	Modifier string
}

func (p ParameterKey) String() string {
	if p.Modifier == "" {
		return p.Name
	}
	return fmt.Sprintf("%s:%s", p.Name, p.Modifier)
}

// Criteria is the match condition of a single search parameter.
type Criteria interface {
	MatchesAll() MatchAll
}

// MatchAll represents conditions that all have to match; each condition
// becomes its own query parameter.
type MatchAll []MatchAny

func (a MatchAll) MatchesAll() MatchAll {
	return a
}

// MatchAny represents alternative values of which one has to match; the
// values are joined by commas in the query.
type MatchAny []Value

func (o MatchAny) MatchesAll() MatchAll {
	return MatchAll{o}
}

// Params is an ordered collection of search parameters. The zero value is
// ready to use.
type Params struct {
	entries []paramEntry
}

type paramEntry struct {
	key      ParameterKey
	criteria MatchAll
}

// Add appends a condition for the named parameter. Parameters are emitted
// in the order they were added; adding the same name twice yields two
// query parameters, i.e. an AND condition.
func (p *Params) Add(name string, criteria Criteria) *Params {
	return p.AddWithModifier(name, "", criteria)
}

// AddWithModifier is Add with a parameter modifier such as "exact" or
// "identifier".
func (p *Params) AddWithModifier(name, modifier string, criteria Criteria) *Params {
	p.entries = append(p.entries, paramEntry{
		key:      ParameterKey{Name: name, Modifier: modifier},
		criteria: criteria.MatchesAll(),
	})
	return p
}

// Len reports the number of added conditions.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Chain builds a chained parameter name such as "subject:Patient.name".
// An empty targetType omits the type restriction.
func Chain(name, targetType, chained string) string {
	if targetType == "" {
		return name + "." + chained
	}
	return name + ":" + targetType + "." + chained
}

// Type is the value type of a search parameter.
type Type string

const (
	TypeNumber    Type = "number"
	TypeDate      Type = "date"
	TypeString    Type = "string"
	TypeToken     Type = "token"
	TypeReference Type = "reference"
	TypeComposite Type = "composite"
	TypeQuantity  Type = "quantity"
	TypeUri       Type = "uri"
	TypeSpecial   Type = "special"
)

// Prefix is a comparison prefix of ordered parameter values.
type Prefix string

const (
	PrefixEqual          Prefix = "eq"
	PrefixNotEqual       Prefix = "ne"
	PrefixGreaterThan    Prefix = "gt"
	PrefixLessThan       Prefix = "lt"
	PrefixGreaterOrEqual Prefix = "ge"
	PrefixLessOrEqual    Prefix = "le"
	PrefixStartsAfter    Prefix = "sa"
	PrefixEndsBefore     Prefix = "eb"
)

// BuildQuery encodes parameters and options into a query string without
// the leading "?". Parameters come first in insertion order, followed by
// _include, _sort, _summary, _cursor and _count.
func BuildQuery(parameters *Params, opts Options) string {
	var b strings.Builder

	appendPair := func(name, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	if parameters != nil {
		for _, e := range parameters.entries {
			for _, matchAny := range e.criteria {
				if len(matchAny) == 0 {
					continue
				}
				s := make([]string, 0, len(matchAny))
				for _, v := range matchAny {
					s = append(s, v.String())
				}
				appendPair(e.key.String(), strings.Join(s, ","))
			}
		}
	}

	for _, include := range opts.Includes {
		appendPair("_include", include)
	}
	if len(opts.Sort) > 0 {
		appendPair("_sort", strings.Join(opts.Sort, ","))
	}
	if opts.Summary != "" {
		appendPair("_summary", opts.Summary)
	}
	if opts.Cursor != "" {
		appendPair("_cursor", string(opts.Cursor))
	}
	if opts.Count > 0 {
		appendPair("_count", strconv.Itoa(opts.Count))
	}

	return b.String()
}

// Value of a search parameter; determine the concrete type by type
// assertion.
type Value interface {
	Criteria
	fmt.Stringer
}

type Number struct {
	Prefix Prefix
	Value  *apd.Decimal
}

func (n Number) MatchesAll() MatchAll {
	return MatchAll{MatchAny{n}}
}

func (n Number) String() string {
	if n.Prefix != "" {
		return fmt.Sprintf("%s%s", n.Prefix, n.Value.String())
	}
	return n.Value.String()
}

type Date struct {
	Prefix    Prefix
	Precision DatePrecision
	Value     time.Time
}

// DatePrecision represents the precision of a date value.
type DatePrecision string

const (
	PrecisionYear       DatePrecision = "year"
	PrecisionMonth      DatePrecision = "month"
	PrecisionDay        DatePrecision = "day"
	PrecisionHourMinute DatePrecision = "hourMinute"
	PrecisionFullTime   DatePrecision = "time"
)

// Format strings for precision aware parsing and encoding.
const (
	DateFormatOnlyYear   = "2006"
	DateFormatUpToMonth  = "2006-01"
	DateFormatUpToDay    = "2006-01-02"
	DateFormatHourMinute = "2006-01-02T15:04Z07:00"
	DateFormatFullTime   = "2006-01-02T15:04:05.999999999Z07:00"
)

// ParseDate parses a search date of any supported precision.
func ParseDate(value string, tz *time.Location) (time.Time, DatePrecision, error) {
	date, err := time.ParseInLocation(DateFormatOnlyYear, value, tz)
	if err == nil {
		return date, PrecisionYear, nil
	}
	date, err = time.ParseInLocation(DateFormatUpToMonth, value, tz)
	if err == nil {
		return date, PrecisionMonth, nil
	}
	date, err = time.ParseInLocation(DateFormatUpToDay, value, tz)
	if err == nil {
		return date, PrecisionDay, nil
	}
	date, err = time.ParseInLocation(DateFormatHourMinute, value, tz)
	if err == nil {
		return date, PrecisionHourMinute, nil
	}
	date, err = time.ParseInLocation(DateFormatFullTime, value, tz)
	if err == nil {
		return date, PrecisionFullTime, nil
	}
	return time.Time{}, "", err
}

func (d Date) MatchesAll() MatchAll {
	return MatchAll{MatchAny{d}}
}

func (d Date) String() string {
	b := strings.Builder{}
	if d.Prefix != "" {
		b.WriteString(string(d.Prefix))
	}
	switch d.Precision {
	case PrecisionYear:
		b.WriteString(d.Value.Format(DateFormatOnlyYear))
	case PrecisionMonth:
		b.WriteString(d.Value.Format(DateFormatUpToMonth))
	case PrecisionDay:
		b.WriteString(d.Value.Format(DateFormatUpToDay))
	case PrecisionHourMinute:
		b.WriteString(d.Value.Format(DateFormatHourMinute))
	default:
		b.WriteString(d.Value.Format(DateFormatFullTime))
	}
	return b.String()
}

type String string

func (s String) MatchesAll() MatchAll {
	return MatchAll{MatchAny{s}}
}

func (s String) String() string {
	return string(s)
}

type Token struct {
	// Go URLs can contain URIs
	System *url.URL
	Code   string
}

func (t Token) String() string {
	if t.System == nil {
		return t.Code
	}
	return fmt.Sprintf("%s|%s", t.System, t.Code)
}

func (t Token) MatchesAll() MatchAll {
	return MatchAll{MatchAny{t}}
}

type Reference struct {
	Id      string
	Type    string
	URL     *url.URL
	Version string
}

func (r Reference) MatchesAll() MatchAll {
	return MatchAll{MatchAny{r}}
}

func (r Reference) String() string {
	if r.URL != nil {
		b := strings.Builder{}
		b.WriteString(r.URL.String())
		if r.Version != "" {
			b.WriteRune('|')
			b.WriteString(r.Version)
		}
		return b.String()
	}

	if r.Type == "" {
		return r.Id
	}

	b := strings.Builder{}
	b.WriteString(r.Type)
	b.WriteRune('/')
	b.WriteString(r.Id)
	if r.Version != "" {
		b.WriteString("/_history/")
		b.WriteString(r.Version)
	}
	return b.String()
}

type Composite []string

func (c Composite) String() string {
	return strings.Join(c, "$")
}

func (c Composite) MatchesAll() MatchAll {
	return MatchAll{MatchAny{c}}
}

type Quantity struct {
	Prefix Prefix
	Value  *apd.Decimal
	System *url.URL
	Code   string
}

func (q Quantity) MatchesAll() MatchAll {
	return MatchAll{MatchAny{q}}
}

func (q Quantity) String() string {
	b := strings.Builder{}
	b.WriteString(string(q.Prefix))
	b.WriteString(q.Value.String())
	if q.Code != "" {
		b.WriteRune('|')
		if q.System != nil {
			b.WriteString(q.System.String())
		}
		b.WriteRune('|')
		b.WriteString(q.Code)
	}
	return b.String()
}

type Uri struct {
	// Go URLs can contain URIs
	Value *url.URL
}

func (u Uri) String() string {
	return u.Value.String()
}

func (u Uri) MatchesAll() MatchAll {
	return MatchAll{MatchAny{u}}
}

// Special string contains potential prefixes.
type Special string

func (s Special) MatchesAll() MatchAll {
	return MatchAll{MatchAny{s}}
}

func (s Special) String() string {
	return string(s)
}
