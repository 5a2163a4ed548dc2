package iconik

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/expr-lang/expr"
)

// SearchService exposes the search endpoints under API/search/v1/.
type SearchService struct {
	service
}

// SearchCriteria is the request payload for a search.
type SearchCriteria struct {
	Query         string        `json:"query"`
	DocTypes      []string      `json:"doc_types,omitempty"`
	Filter        *SearchFilter `json:"filter,omitempty"`
	Sort          []SortField   `json:"sort,omitempty"`
	IncludeFields []string      `json:"include_fields,omitempty"`
}

// SearchFilter combines filter terms with a boolean operator.
type SearchFilter struct {
	Operator string       `json:"operator" default:"AND"`
	Terms    []FilterTerm `json:"terms"`
}

// FilterTerm matches a single field against a value or value set.
type FilterTerm struct {
	Name     string   `json:"name"`
	Value    string   `json:"value,omitempty"`
	ValueIn  []string `json:"value_in,omitempty"`
	Range    *Range   `json:"range,omitempty"`
	Exists   bool     `json:"exists,omitempty"`
	Missing  bool     `json:"missing,omitempty"`
}

// Range bounds a term between two values.
type Range struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// SortField orders search results by one field.
type SortField struct {
	Name  string `json:"name"`
	Order string `json:"order" default:"asc" validate:"omitempty,oneof=asc desc"`
}

// SearchObject is one hit in a search result. Search hits always carry
// date_created, which the pagination engine relies on when it crosses the
// result window.
type SearchObject struct {
	ID           string         `json:"id" validate:"required"`
	ObjectType   string         `json:"object_type"`
	Title        string         `json:"title"`
	Status       string         `json:"status"`
	DateCreated  time.Time      `json:"date_created"`
	DateModified time.Time      `json:"date_modified"`
	Metadata     map[string]any `json:"metadata"`
}

// Search runs a search and returns a single page of hits. Pagination
// parameters ("page", "per_page") go in params; the criteria go in body,
// which may be a SearchCriteria or a raw map.
func (s *SearchService) Search(ctx context.Context, body any, params url.Values) (*Result[Page[SearchObject]], error) {
	return doRequest[Page[SearchObject]](ctx, s.tr, http.MethodPost, s.path("search/"), body, params)
}

// SearchAll runs a search and collects every hit into one virtual page,
// switching to date_created continuation when the traversal crosses the
// search backend's result window.
func (s *SearchService) SearchAll(ctx context.Context, body any) (*Page[SearchObject], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(o SearchObject) time.Time { return o.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[SearchObject], error) {
			res, err := s.Search(ctx, body, params)
			if err != nil {
				return nil, err
			}
			if err := res.Raw.Err(); err != nil {
				return nil, err
			}
			return res.Data, nil
		})
}

// FilterObjects evaluates an expression against each hit and returns the
// ones it matches. The expression sees the hit as Object plus string and
// date helpers, e.g.:
//
//	contains(Object.Title, "trailer") && daysSince(Object.DateCreated) < 30
func FilterObjects(objects []SearchObject, expression string) ([]SearchObject, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("%w: empty filter expression", ErrInvalidArgument)
	}

	env := map[string]any{
		"Object": SearchObject{},
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"now": time.Now,
	}

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	var matched []SearchObject
	for _, obj := range objects {
		env["Object"] = obj
		out, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate filter expression: %w", err)
		}
		if keep, ok := out.(bool); ok && keep {
			matched = append(matched, obj)
		}
	}
	return matched, nil
}
