// Package report serves read-only views over the document collections
// under /api/reports.
package report

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/controller/document"
	"github.com/stockroom/stockroom/internal/web/apierror"
	"github.com/stockroom/stockroom/internal/web/handler"
)

const (
	collectionParam = "collection"
	dateLayout      = "2006-01-02"
	day             = 24 * time.Hour
)

// Sum is the response of the sum route. Total is rendered as string to
// keep its precision.
type Sum struct {
	Collection string          `json:"collection"`
	Field      string          `json:"field"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
}

// Service is the report handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Init registers the report routes on router.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilRCD
	}

	s.cfg = cfg
	s.db = db

	router.Get("/:"+collectionParam, s.List)
	router.Get("/:"+collectionParam+"/sum", s.Sum)

	return nil
}

// parseBound parses an RFC3339 timestamp or a date. A date used as upper
// bound includes the whole day.
func parseBound(raw string, upper bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apierror.Newf(apierror.Validation,
			"%q is neither an RFC3339 timestamp nor a date (YYYY-MM-DD)", raw)
	}

	if upper {
		t = t.Add(day)
	}

	return t, nil
}

func (s *Service) documents(c fiber.Ctx) (document.Collection, []document.Fields, error) {
	name := c.Params(collectionParam)

	coll, ok := document.Lookup(name)
	if !ok {
		return coll, nil, apierror.Newf(apierror.NotFound, "report %q not found", name)
	}

	from, err := parseBound(c.Query("from"), false)
	if err != nil {
		return coll, nil, err
	}

	to, err := parseBound(c.Query("to"), true)
	if err != nil {
		return coll, nil, err
	}

	docs, err := document.Between(s.db, coll, from, to)
	if err != nil {
		return coll, nil, apierror.FromStore(err)
	}

	out, err := document.RenderAll(coll, docs)
	if err != nil {
		return coll, nil, apierror.Wrap(apierror.Unhandled, err)
	}

	return coll, out, nil
}

// List returns the documents of one collection, optionally limited by
// the from and to query parameters on createdAt.
func (s *Service) List(c fiber.Ctx) error {
	_, docs, err := s.documents(c)
	if err != nil {
		return err
	}

	return c.JSON(docs)
}

// Sum adds up the numeric values of one top level field.
// Values which are no number are skipped.
func (s *Service) Sum(c fiber.Ctx) error {
	field := strings.TrimSpace(c.Query("field"))
	if field == "" {
		return apierror.New(apierror.Validation, "field is required")
	}

	coll, docs, err := s.documents(c)
	if err != nil {
		return err
	}

	sum := Sum{
		Collection: coll.Name,
		Field:      field,
		Total:      decimal.Zero,
	}

	for _, doc := range docs {
		v, ok := number(doc[field])
		if !ok {
			continue
		}

		sum.Total = sum.Total.Add(v)
		sum.Count++
	}

	return c.JSON(sum)
}

func number(v any) (decimal.Decimal, bool) {
	var raw string

	switch n := v.(type) {
	case json.Number:
		raw = n.String()
	case string:
		raw = strings.TrimSpace(n)
	default:
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}
