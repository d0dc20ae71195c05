// Package spoonacular implements the meal-plan generation pipeline against
// the upstream recipe service: the weekly-plan fetch, the concurrent
// per-meal detail fetches, and the nutrition aggregation that rebuilds
// per-day totals from fine-grained data.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"pulsefit/server/internal/cache"
	"pulsefit/server/internal/config"
	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/metrics"
)

// Error definitions. Upstream failures carry the raw status text so it can
// be shown to the user unmodified.
var (
	ErrUpstreamUnavailable = errors.New("upstream recipe service unavailable")
	ErrMalformedResponse   = errors.New("malformed upstream response")
)

// Days as keyed in the weekly-plan payload, iterated in this fixed order so
// generated plans are stable across runs.
var weekDayOrder = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

const defaultDaysCount = 7

// Client talks to the upstream recipe/meal-plan service. Recipe detail
// lookups are memoized through the injected cache.
type Client struct {
	baseURL      string
	apiKey       string
	imageBaseURL string
	httpClient   *http.Client
	cache        cache.Cache
	detailTTL    time.Duration
	logger       zerolog.Logger
}

// NewClient creates a Client from configuration. The cache is required; use
// cache.NewMemory() when no shared backend is configured.
func NewClient(cfg config.SpoonacularConfig, kv cache.Cache, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		imageBaseURL: cfg.ImageBaseURL,
		httpClient:   http.DefaultClient,
		cache:        kv,
		detailTTL:    cfg.DetailCacheTTL,
		logger:       logger.With().Str("component", "spoonacular").Logger(),
	}
}

// Fixed operation names for the upstream request counter. The raw request
// path must never become a label value: per-recipe paths would mint one
// time series per recipe ID.
const (
	opGeneratePlan      = "mealplanner_generate"
	opRecipeInformation = "recipe_information"
)

// get issues one upstream GET with the API key appended. A non-2xx response
// maps to ErrUpstreamUnavailable carrying the raw status text. op labels the
// request in metrics and must be one of the fixed operation names.
func (c *Client) get(ctx context.Context, op, endpoint string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("apiKey", c.apiKey)

	reqURL := c.baseURL + endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	metrics.UpstreamRequests.WithLabelValues(op, metrics.OutcomeOK).Inc()
	return body, nil
}

// RecipeNutrition fetches per-recipe detail and reduces it to the four
// tracked macros. Results are memoized under "recipe:<id>"; cache failures
// are ignored, a fetch failure is returned to the caller.
func (c *Client) RecipeNutrition(ctx context.Context, recipeID int64) (*domain.Nutrition, error) {
	key := fmt.Sprintf("recipe:%d", recipeID)
	if cached, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var nutrition domain.Nutrition
		if err := json.Unmarshal([]byte(cached), &nutrition); err == nil {
			return &nutrition, nil
		}
	}

	body, err := c.get(ctx, opRecipeInformation, fmt.Sprintf("/recipes/%d/information", recipeID), url.Values{
		"includeNutrition": []string{"true"},
	})
	if err != nil {
		return nil, err
	}

	var details recipeDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	nutrition := parseNutrition(details.Nutrition)
	if nutrition != nil {
		if encoded, err := json.Marshal(nutrition); err == nil {
			if err := c.cache.Set(ctx, key, string(encoded), c.detailTTL); err != nil {
				c.logger.Warn().Err(err).Str("key", key).Msg("recipe cache write failed")
			}
		}
	}
	return nutrition, nil
}

// GenerateMealPlan issues the weekly-plan request, enriches every meal with
// fine-grained nutrition, recomputes per-day totals and truncates the result
// to daysCount.
//
// Per-meal detail fetches within a day fan out concurrently and the day
// waits for all of them; a single meal's failure degrades to unknown
// nutrition for that meal only and never fails the day or the plan. Days
// themselves are processed sequentially and truncation happens only after
// all days are processed.
func (c *Client) GenerateMealPlan(ctx context.Context, prefs domain.DietPreferences, daysCount int) ([]domain.MealPlanDay, error) {
	if daysCount < 1 {
		daysCount = defaultDaysCount
	} else if daysCount > 30 {
		daysCount = 30
	}

	body, err := c.get(ctx, opGeneratePlan, "/mealplanner/generate", PlanParams(prefs))
	if err != nil {
		return nil, err
	}

	// Shape probe before the typed decode: a missing or wrong-shaped week
	// field is a malformed response, not an empty plan.
	week := gjson.GetBytes(body, "week")
	if !week.Exists() || !week.IsObject() {
		return nil, fmt.Errorf("%w: missing or invalid week field", ErrMalformedResponse)
	}

	var plan weeklyPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	days := make([]domain.MealPlanDay, 0, len(plan.Week))
	for _, dayKey := range weekDayOrder {
		upstreamDay, ok := plan.Week[dayKey]
		if !ok {
			continue
		}
		days = append(days, c.buildDay(ctx, dayKey, upstreamDay))
	}

	if len(days) > daysCount {
		days = days[:daysCount]
	}
	return days, nil
}

// buildDay fans out the per-meal detail fetches, joins them, and recomputes
// the day's totals from the meals that resolved.
func (c *Client) buildDay(ctx context.Context, dayKey string, upstream planDay) domain.MealPlanDay {
	outcomes := settleAll(len(upstream.Meals), func(i int) (*domain.Nutrition, error) {
		return c.RecipeNutrition(ctx, upstream.Meals[i].ID)
	})

	day := domain.MealPlanDay{Meals: make([]domain.Meal, len(upstream.Meals))}
	for i, upstreamMeal := range upstream.Meals {
		meal := domain.Meal{
			ID:             upstreamMeal.ID,
			Title:          upstreamMeal.Title,
			Image:          normalizeImage(upstreamMeal.Image, c.imageBaseURL),
			ReadyInMinutes: upstreamMeal.ReadyInMinutes,
		}
		if outcome := outcomes[i]; outcome.Err != nil {
			// Partial-failure isolation: the meal stays in the list with
			// unknown nutrition and contributes zero to the totals.
			metrics.MealDetailFailures.Inc()
			c.logger.Warn().Err(outcome.Err).
				Str("day", dayKey).
				Int64("recipeID", upstreamMeal.ID).
				Msg("meal detail fetch failed")
		} else if outcome.Value != nil {
			meal.Nutrition = outcome.Value
			day.Nutrients.Add(*outcome.Value)
		}
		day.Meals[i] = meal
	}
	return day
}
