package main

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwater/charterapi/types"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Campbell River Charters":  "campbell-river-charters",
		"  Joe's  Boats!  ":        "joes-boats",
		"UPPER_case___name":        "upper-case-name",
		"Côte Nord":                "cte-nord",
		"---":                      "",
		"Orca & Whale Tours (BC)":  "orca-whale-tours-bc",
		"already-a-slug":           "already-a-slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}

func TestUniqueSlug(t *testing.T) {
	db := openTestDB(t)

	slug, err := uniqueSlug(db, "Campbell River Charters", "")
	require.NoError(t, err)
	assert.Equal(t, "campbell-river-charters", slug)

	taken := types.Operator{Name: "Campbell River Charters", Slug: "campbell-river-charters", Email: "one@example.com"}
	require.NoError(t, db.Create(&taken).Error)

	slug, err = uniqueSlug(db, "Campbell River Charters", "")
	require.NoError(t, err)
	assert.Equal(t, "campbell-river-charters-1", slug)

	next := types.Operator{Name: "Campbell River Charters", Slug: "campbell-river-charters-1", Email: "two@example.com"}
	require.NoError(t, db.Create(&next).Error)

	slug, err = uniqueSlug(db, "Campbell River Charters", "")
	require.NoError(t, err)
	assert.Equal(t, "campbell-river-charters-2", slug)

	// an operator renaming to its own name keeps its slug
	slug, err = uniqueSlug(db, "Campbell River Charters", taken.ID)
	require.NoError(t, err)
	assert.Equal(t, "campbell-river-charters", slug)

	// an empty name still yields something usable
	slug, err = uniqueSlug(db, "!!!", "")
	require.NoError(t, err)
	assert.Equal(t, "operator", slug)
}

func TestOperatorEndpoints(t *testing.T) {
	_, router := newTestServer(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/operators", gin.H{
		"name": "Island Hoppers", "email": "hello@islandhoppers.ca", "phone": "+1 555 0100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	d := data(t, body)
	opID := d["id"].(string)
	assert.Equal(t, "island-hoppers", d["slug"])

	// same email is refused
	w, body = doJSON(t, router, http.MethodPost, "/api/operators", gin.H{
		"name": "Other Name", "email": "hello@islandhoppers.ca",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists", body["error"])

	// same name gets a suffixed slug
	w, body = doJSON(t, router, http.MethodPost, "/api/operators", gin.H{
		"name": "Island Hoppers", "email": "other@islandhoppers.ca",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "island-hoppers-1", data(t, body)["slug"])

	// renaming regenerates the slug
	w, body = doJSON(t, router, http.MethodPut, "/api/operators/"+opID, gin.H{
		"name": "Island Hoppers North", "email": "hello@islandhoppers.ca",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "island-hoppers-north", data(t, body)["slug"])

	w, body = doJSON(t, router, http.MethodGet, "/api/operators/"+opID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Island Hoppers North", data(t, body)["name"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/operators/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOperatorListCounts(t *testing.T) {
	db, router := newTestServer(t)
	fx := seedFixtures(t, db)

	w, body := doJSON(t, router, http.MethodGet, "/api/operators", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ops := body["data"].([]interface{})
	require.Len(t, ops, 1)
	view := ops[0].(map[string]interface{})
	assert.Equal(t, fx.op.Name, view["name"])
	assert.Equal(t, float64(2), view["vesselCount"])
	assert.Equal(t, float64(3), view["tourCount"])
}

func TestOperatorListSurfacesCountErrors(t *testing.T) {
	db, router := newTestServer(t)
	seedFixtures(t, db)

	require.NoError(t, db.DropTable(&types.Vessel{}).Error)

	w, body := doJSON(t, router, http.MethodGet, "/api/operators", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestDeleteOperatorCascades(t *testing.T) {
	db, router := newTestServer(t)
	fx := seedFixtures(t, db)
	st := mustSchedule(t, db, fx.op.ID, fx.whales, fx.explorer, tomorrowAt(9, 0))
	mustBook(t, db, st.ID, 4)

	w, body := doJSON(t, router, http.MethodDelete, "/api/operators/"+fx.op.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Operator deleted successfully", body["message"])

	for name, model := range map[string]interface{}{
		"operators":       &types.Operator{},
		"vessels":         &types.Vessel{},
		"tours":           &types.Tour{},
		"scheduled tours": &types.ScheduledTour{},
		"bookings":        &types.Booking{},
	} {
		var count int
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%s left behind", name)
	}
}
