package disease_test

import (
	"clinic/infras/otel/mocks"
	"clinic/internal/domains/disease/model/dto"
	"clinic/internal/domains/disease/service"
	serviceMocks "clinic/internal/domains/disease/service/mocks"
	"clinic/internal/handlers/disease"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const categoryID = "5b0c3a7e-2f7a-4d55-9a3c-7d2f0b6c1e11"

func TestRoutes(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		setup    func(svc *serviceMocks.MockDisease)
		wantCode int
	}{
		{
			name:   "create category",
			method: http.MethodPost,
			target: "/v1/disease-categories",
			body:   `{"title":"Skin"}`,
			setup: func(svc *serviceMocks.MockDisease) {
				svc.EXPECT().CreateCategory(gomock.Any(), dto.CategoryRequest{Title: "Skin"}).Return("cat-1", nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "category without title",
			method:   http.MethodPost,
			target:   "/v1/disease-categories",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "delete category in use",
			method: http.MethodDelete,
			target: "/v1/disease-categories/" + categoryID,
			setup: func(svc *serviceMocks.MockDisease) {
				svc.EXPECT().DeleteCategory(gomock.Any(), categoryID).Return(service.ErrCategoryInUse)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "create disease in unknown category",
			method: http.MethodPost,
			target: "/v1/diseases",
			body:   `{"title":"Eczema","category_id":"` + categoryID + `"}`,
			setup: func(svc *serviceMocks.MockDisease) {
				svc.EXPECT().Create(gomock.Any(), dto.CreateDiseaseRequest{Title: "Eczema", CategoryID: categoryID}).
					Return("", service.ErrUnknownCategory)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "create disease with malformed category",
			method:   http.MethodPost,
			target:   "/v1/diseases",
			body:     `{"title":"Eczema","category_id":"7"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "list diseases of a category",
			method: http.MethodGet,
			target: "/v1/diseases?category_id=" + categoryID,
			setup: func(svc *serviceMocks.MockDisease) {
				svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), dto.GetDiseasesRequest{CategoryID: categoryID}).
					Return(dto.GetDiseasesResponse{}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "delete unknown disease",
			method: http.MethodDelete,
			target: "/v1/diseases/d-1",
			setup: func(svc *serviceMocks.MockDisease) {
				svc.EXPECT().Delete(gomock.Any(), "d-1").Return(service.ErrDiseaseNotFound)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := serviceMocks.NewMockDisease(ctrl)

			if tt.setup != nil {
				tt.setup(svc)
			}

			handler := disease.New(svc, mocks.NewOtel())
			router := chi.NewRouter()
			router.Route("/v1", handler.Router)

			request := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}
