package spoonacular

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/server/internal/cache"
	"pulsefit/server/internal/config"
	"pulsefit/server/internal/domain"
)

// fakeUpstream serves a weekly plan and per-recipe details. Recipe IDs in
// failingRecipes answer 500.
type fakeUpstream struct {
	days           []string
	mealsPerDay    int
	failingRecipes map[int64]bool
	detailCalls    atomic.Int64
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mealplanner/generate", func(w http.ResponseWriter, r *http.Request) {
		var days []string
		for i, day := range f.days {
			meals := make([]string, 0, f.mealsPerDay)
			for m := 0; m < f.mealsPerDay; m++ {
				id := int64(i*10 + m + 1)
				meals = append(meals, fmt.Sprintf(
					`{"id":%d,"title":"Recipe %d","image":"recipe-%d.jpg","readyInMinutes":30}`, id, id, id))
			}
			days = append(days, fmt.Sprintf(`%q:{"meals":[%s],"nutrients":{"calories":9999}}`, day, strings.Join(meals, ",")))
		}
		fmt.Fprintf(w, `{"week":{%s}}`, strings.Join(days, ","))
	})
	mux.HandleFunc("/recipes/", func(w http.ResponseWriter, r *http.Request) {
		var id int64
		fmt.Sscanf(r.URL.Path, "/recipes/%d/information", &id)
		f.detailCalls.Add(1)
		if f.failingRecipes[id] {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"id":%d,"title":"Recipe %d","nutrition":{"nutrients":[
			{"name":"Calories","amount":400.4,"unit":"kcal"},
			{"name":"Protein","amount":30.2,"unit":"g"},
			{"name":"Carbohydrates","amount":45.0,"unit":"g"},
			{"name":"Fat","amount":12.6,"unit":"g"}]}}`, id, id)
	})
	return mux
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(config.SpoonacularConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		ImageBaseURL:   "https://spoonacular.com/recipeImages/",
		DetailCacheTTL: time.Minute,
	}, cache.NewMemory(), zerolog.Nop())
}

func TestGenerateMealPlanTruncatesAfterProcessing(t *testing.T) {
	upstream := &fakeUpstream{
		days:        []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
		mealsPerDay: 2,
	}
	server := httptest.NewServer(upstream.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	days, err := client.GenerateMealPlan(context.Background(), domain.DietPreferences{}, 3)
	require.NoError(t, err)
	require.Len(t, days, 3)

	// Every upstream day was still enriched; truncation came last.
	assert.Equal(t, int64(14), upstream.detailCalls.Load())
}

func TestGenerateMealPlanDayOrderIsStable(t *testing.T) {
	upstream := &fakeUpstream{
		days:        []string{"wednesday", "monday", "friday"},
		mealsPerDay: 1,
	}
	server := httptest.NewServer(upstream.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	days, err := client.GenerateMealPlan(context.Background(), domain.DietPreferences{}, 7)
	require.NoError(t, err)
	require.Len(t, days, 3)

	// Weekday order, not payload order: monday, wednesday, friday.
	assert.Equal(t, "Recipe 11", days[0].Meals[0].Title)
	assert.Equal(t, "Recipe 1", days[1].Meals[0].Title)
	assert.Equal(t, "Recipe 21", days[2].Meals[0].Title)
}

func TestGenerateMealPlanIsolatesMealFailures(t *testing.T) {
	upstream := &fakeUpstream{
		days:           []string{"monday"},
		mealsPerDay:    3,
		failingRecipes: map[int64]bool{2: true},
	}
	server := httptest.NewServer(upstream.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	days, err := client.GenerateMealPlan(context.Background(), domain.DietPreferences{}, 1)
	require.NoError(t, err)
	require.Len(t, days, 1)

	day := days[0]
	// The failed meal stays in the list with unknown nutrition.
	require.Len(t, day.Meals, 3)
	assert.NotNil(t, day.Meals[0].Nutrition)
	assert.Nil(t, day.Meals[1].Nutrition)
	assert.NotNil(t, day.Meals[2].Nutrition)

	// Totals come from the two meals that resolved; amounts are rounded.
	assert.Equal(t, domain.Nutrition{Calories: 800, Protein: 60, Carbs: 90, Fat: 26}, day.Nutrients)
}

func TestGenerateMealPlanRejectsMissingWeek(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateMealPlan(context.Background(), domain.DietPreferences{}, 7)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerateMealPlanSurfacesUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateMealPlan(context.Background(), domain.DietPreferences{}, 7)
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	// The raw status text rides along unmodified.
	assert.Contains(t, err.Error(), "402")
}

func TestGenerateMealPlanNormalizesImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/mealplanner") {
			fmt.Fprint(w, `{"week":{"monday":{"meals":[
				{"id":1,"title":"Bare","image":"oatmeal.jpg","readyInMinutes":10},
				{"id":2,"title":"Absolute","image":"https://cdn.example.com/x.jpg","readyInMinutes":10},
				{"id":3,"title":"None","image":"","readyInMinutes":10}]}}}`)
			return
		}
		fmt.Fprint(w, `{"id":1,"title":"x","nutrition":{"nutrients":[]}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	days, err := client.GenerateMealPlan(context.Background(), domain.DietPreferences{}, 1)
	require.NoError(t, err)
	require.Len(t, days, 1)

	meals := days[0].Meals
	assert.Equal(t, "https://spoonacular.com/recipeImages/oatmeal.jpg", meals[0].Image)
	assert.Equal(t, "https://cdn.example.com/x.jpg", meals[1].Image)
	assert.Equal(t, "", meals[2].Image)
}

func TestUpstreamMetricLabelsStayFixed(t *testing.T) {
	upstream := &fakeUpstream{
		days:        []string{"monday"},
		mealsPerDay: 5,
	}
	server := httptest.NewServer(upstream.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateMealPlan(context.Background(), domain.DietPreferences{}, 1)
	require.NoError(t, err)

	// Per-recipe paths must not leak into the endpoint label: five distinct
	// recipe fetches still produce exactly one series per operation name.
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, family := range families {
		if family.GetName() != "pulsefit_upstream_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "endpoint" {
					seen[label.GetValue()] = true
				}
			}
		}
	}

	for value := range seen {
		assert.Contains(t, []string{"mealplanner_generate", "recipe_information"}, value)
	}
	assert.True(t, seen["mealplanner_generate"])
	assert.True(t, seen["recipe_information"])
}

func TestRecipeNutritionIsMemoized(t *testing.T) {
	upstream := &fakeUpstream{days: []string{"monday"}, mealsPerDay: 1}
	server := httptest.NewServer(upstream.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	first, err := client.RecipeNutrition(context.Background(), 1)
	require.NoError(t, err)
	second, err := client.RecipeNutrition(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), upstream.detailCalls.Load())
}

func TestRecipeNutritionMissingNutrientsDefaultToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":7,"title":"x","nutrition":{"nutrients":[
			{"name":"Calories","amount":512.2,"unit":"kcal"}]}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	nutrition, err := client.RecipeNutrition(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, nutrition)
	assert.Equal(t, &domain.Nutrition{Calories: 512, Protein: 0, Carbs: 0, Fat: 0}, nutrition)
}

func TestRecipeNutritionWithoutPayloadIsUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":8,"title":"x"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	nutrition, err := client.RecipeNutrition(context.Background(), 8)
	require.NoError(t, err)
	assert.Nil(t, nutrition)
}
