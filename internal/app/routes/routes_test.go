package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusdesk/academics/internal/app/controllers"
	"github.com/campusdesk/academics/internal/middleware"
	"github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "test"})
	c := Controllers{
		Auth:     controllers.NewAuthController(nil, zerolog.Nop()),
		Course:   controllers.NewCourseController(nil),
		Semester: controllers.NewSemesterController(nil),
		User:     controllers.NewUserController(nil),
		Profile:  controllers.NewProfileController(nil),
	}

	router := gin.New()
	require.NotPanics(t, func() {
		SetupRouter(router, c, middleware.NewAuthMiddleware(jwtService))
	})
	return router
}

func TestSetupRouter_RegistersCourseRoutes(t *testing.T) {
	router := newTestRouter(t)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/courses",
		"GET /api/v1/courses/:id",
		"GET /api/v1/courses/:id/faculties",
		"POST /api/v1/courses/create-course",
		"PATCH /api/v1/courses/:id",
		"DELETE /api/v1/courses/:id",
		"PUT /api/v1/courses/:id/assign-faculties",
		"PATCH /api/v1/academic-semesters/:semesterId",
		"GET /api/v1/students/:id",
		"GET /api/v1/health",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestSetupRouter_Dispatch(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"health", http.MethodGet, "/api/v1/health", http.StatusOK},
		{"faculties with bad id", http.MethodGet, "/api/v1/courses/abc/faculties", http.StatusBadRequest},
		{"update without token", http.MethodPatch, "/api/v1/courses/1", http.StatusUnauthorized},
		{"assign without token", http.MethodPut, "/api/v1/courses/1/assign-faculties", http.StatusUnauthorized},
		{"students without token", http.MethodGet, "/api/v1/students", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
