package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleListing(id string) domain.Listing {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return domain.Listing{
		ListingID:    id,
		UserID:       testUserID,
		Title:        "Toyota Camry 2018",
		Price:        decimal.NewFromInt(20000),
		Currency:     pricing.USD,
		Governorate:  domain.DefaultGovernorate,
		Brand:        "Toyota",
		Year:         2018,
		Transmission: domain.TransmissionAutomatic,
		FuelType:     domain.FuelPetrol,
		Images:       []string{"/media/cars/user-1/a.jpg"},
		AuditFields:  domain.AuditFields{CreatedAt: created, LastUpdatedAt: created},
		Seller:       &domain.SellerSummary{FullName: "Ali", Phone: "07701234567", JoinedAt: created},
	}
}

func (s *HandlersTestSuite) TestSearchListings() {
	next := "next-page"
	s.listings.On("SearchListings", mock.Anything, mock.MatchedBy(func(p dto.SearchListingsParams) bool {
		return p.Query == "camry" && p.Premium == "true" && p.Limit == 20
	})).Return([]domain.Listing{sampleListing("l1")}, &next, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/listings?q=camry&premium=true", nil, "", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListListingsResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Listings, 1)
	s.Equal("l1", resp.Listings[0].ListingID)
	s.Equal("$20,000", resp.Listings[0].Display.Primary)
	s.Equal(pricing.IQD, resp.Listings[0].Display.SecondaryCode)
	s.Require().NotNil(resp.NextToken)
	s.Equal(next, *resp.NextToken)
}

func (s *HandlersTestSuite) TestSearchListings_InvalidFilter() {
	w := s.request(http.MethodGet, "/api/v1/listings?transmission=cvt", nil, "", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestSearchListings_BadToken() {
	s.listings.On("SearchListings", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.ErrValidation).Once()

	w := s.request(http.MethodGet, "/api/v1/listings?nextToken=garbage", nil, "", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestGetListing_NotFound() {
	s.listings.On("GetListing", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := s.request(http.MethodGet, "/api/v1/listings/missing", nil, "", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestCreateListing_Multipart() {
	body, contentType := s.multipartBody(map[string]string{
		"title":        "Kia Sportage",
		"price":        "25000000",
		"brand":        "Kia",
		"year":         "2020",
		"transmission": "automatic",
		"fuelType":     "petrol",
		"governorate":  "البصرة",
	},
		formFile{field: "images", name: "front.jpg", data: []byte("one")},
		formFile{field: "images", name: "back.jpg", data: []byte("two")},
	)

	created := sampleListing("new-listing")
	s.listings.On("CreateListing", mock.Anything, testUserID,
		mock.MatchedBy(func(r dto.CreateListingRequest) bool {
			return r.Title == "Kia Sportage" && r.Year == 2020 && r.Governorate == "البصرة"
		}),
		mock.MatchedBy(func(files []dto.FileUpload) bool {
			return len(files) == 2 && files[0].Name == "front.jpg" && string(files[1].Data) == "two"
		}),
	).Return(&created, nil).Once()

	w := s.request(http.MethodPost, "/api/v1/listings", body, contentType, testUserID)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ListingResponse
	s.decode(w, &resp)
	s.Equal("new-listing", resp.ListingID)
}

func (s *HandlersTestSuite) TestCreateListing_UnknownGovernorate() {
	body, contentType := s.multipartBody(map[string]string{
		"title":        "Kia Sportage",
		"price":        "25000000",
		"brand":        "Kia",
		"year":         "2020",
		"transmission": "automatic",
		"fuelType":     "petrol",
		"governorate":  "Atlantis",
	})

	w := s.request(http.MethodPost, "/api/v1/listings", body, contentType, testUserID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestUpdateListing_NotOwner() {
	title := "New title"
	s.listings.On("UpdateListing", mock.Anything, "l1", dto.UpdateListingRequest{Title: &title}, testUserID).
		Return(nil, apperrors.ErrForbidden).Once()

	w := s.requestJSON(http.MethodPut, "/api/v1/listings/l1", map[string]any{"title": title}, testUserID)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestAddImages() {
	body, contentType := s.multipartBody(nil, formFile{field: "images", name: "side.png", data: []byte("png")})
	updated := sampleListing("l1")
	s.listings.On("AddImages", mock.Anything, "l1", mock.Anything, testUserID).Return(&updated, nil).Once()

	w := s.request(http.MethodPost, "/api/v1/listings/l1/images", body, contentType, testUserID)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestDeleteListing() {
	s.listings.On("DeleteListing", mock.Anything, "l1", testUserID).Return(nil).Once()

	w := s.request(http.MethodDelete, "/api/v1/listings/l1", nil, "", testUserID)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlersTestSuite) TestMyListings() {
	s.listings.On("ListUserListings", mock.Anything, testUserID).Return([]domain.Listing{sampleListing("l1"), sampleListing("l2")}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/me/listings", nil, "", testUserID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListListingsResponse
	s.decode(w, &resp)
	s.Len(resp.Listings, 2)
	s.Nil(resp.NextToken)
}

func (s *HandlersTestSuite) TestAdminSetPremium() {
	updated := sampleListing("l1")
	updated.IsPremium = true
	s.listings.On("SetPremium", mock.Anything, "l1", true, testAdminID).Return(&updated, nil).Once()

	w := s.requestJSON(http.MethodPatch, "/api/v1/admin/listings/l1/premium", map[string]bool{"isPremium": true}, testAdminID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListingResponse
	s.decode(w, &resp)
	s.True(resp.IsPremium)
}

func (s *HandlersTestSuite) TestAdminSetPremium_MissingFlag() {
	w := s.requestJSON(http.MethodPatch, "/api/v1/admin/listings/l1/premium", map[string]any{}, testAdminID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestAdminListListings() {
	s.listings.On("ListForAdmin", mock.Anything, dto.AdminListListingsParams{Status: "premium", Sort: "oldest", Limit: 50}).
		Return([]domain.Listing{}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/admin/listings?status=premium&sort=oldest", nil, "", testAdminID)
	s.Equal(http.StatusOK, w.Code)
}

// streamRecorder adds the CloseNotifier gin's streaming needs.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func (s *HandlersTestSuite) TestStreamListings() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/stream", nil).WithContext(ctx)
	rec := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.router.ServeHTTP(rec, req)
	}()

	s.Require().Eventually(func() bool {
		return s.hub.Subscribers(domain.StreamListings) == 1
	}, time.Second, 5*time.Millisecond)

	s.Require().NoError(s.hub.Publish(context.Background(), domain.Event{Type: domain.EventListingCreated, ListingID: "l9"}))
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("stream did not stop after the client went away")
	}

	s.Equal("text/event-stream", rec.Header().Get("Content-Type"))
	s.Contains(rec.Body.String(), "event:listing.created")
	s.Contains(rec.Body.String(), `"listingID":"l9"`)
	s.Equal(0, s.hub.Subscribers(domain.StreamListings))
}

func (s *HandlersTestSuite) TestStreamListings_EndsWhenHubCloses() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/stream", nil)
	rec := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.router.ServeHTTP(rec, req)
	}()

	s.Require().Eventually(func() bool {
		return s.hub.Subscribers(domain.StreamListings) == 1
	}, time.Second, 5*time.Millisecond)

	s.hub.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("stream kept running after the server started shutting down")
	}
}
