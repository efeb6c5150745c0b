package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore/internal/book"
	"bookstore/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPHandler(t *testing.T) (*HTTPHandler, *MockRepository, *MockCatalog) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	mockCatalog := NewMockCatalog(ctrl)
	return NewHTTPHandler(NewService(mockRepo, mockCatalog)), mockRepo, mockCatalog
}

func validCreateBody() map[string]any {
	return map[string]any{
		"customerName":    "John Doe",
		"customerEmail":   "john.doe@example.com",
		"customerMobile":  "9876543210",
		"customerAddress": "123 Main Street, City",
		"books":           []string{bookID1},
	}
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler, mockRepo, mockCatalog := newHTTPHandler(t)
		mockCatalog.EXPECT().GetByID(gomock.Any(), bookID1).Return(book.Book{ID: bookID1, Price: 10.99}, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/orders/create-order", validCreateBody())

		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusCreated, resp.Code)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "Pending", data["status"])
		assert.Equal(t, 10.99, data["totalPrice"])
	})

	t.Run("validation failure", func(t *testing.T) {
		handler, _, _ := newHTTPHandler(t)
		body := validCreateBody()
		body["customerMobile"] = "12345"

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/orders/create-order", body)

		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "Invalid mobile number format", errBody["message"])
	})

	t.Run("missing book yields 404 naming the id", func(t *testing.T) {
		handler, _, mockCatalog := newHTTPHandler(t)
		mockCatalog.EXPECT().GetByID(gomock.Any(), bookID1).Return(book.Book{}, book.ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/orders/create-order", validCreateBody())

		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "Book with ID "+bookID1+" not found", errBody["message"])
	})
}

func TestHTTPHandler_List(t *testing.T) {
	t.Run("filters forwarded", func(t *testing.T) {
		handler, mockRepo, _ := newHTTPHandler(t)
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q Query) ([]Order, error) {
				assert.Equal(t, "john", q.CustomerName)
				assert.Equal(t, "Pending", q.Status)
				require.NotNil(t, q.Day)
				assert.Equal(t, "2026-08-01", q.Day.Format("2006-01-02"))
				return []Order{}, nil
			})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/orders/get-orders?customerName=john&orderDate=2026-08-01&status=Pending", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed orderDate", func(t *testing.T) {
		handler, _, _ := newHTTPHandler(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/orders/get-orders?orderDate=yesterday", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		handler, _, _ := newHTTPHandler(t)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/orders/update-order/"+testOrderID, map[string]any{})
		r.SetPathValue("id", testOrderID)

		handler.Update(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("books unavailable", func(t *testing.T) {
		handler, _, mockCatalog := newHTTPHandler(t)
		mockCatalog.EXPECT().CountByIDs(gomock.Any(), []string{bookID1, bookID2}).Return(1, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/orders/update-order/"+testOrderID, map[string]any{
			"books": []string{bookID1, bookID2},
		})
		r.SetPathValue("id", testOrderID)

		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "One or more books are not available in the inventory", errBody["message"])
	})

	t.Run("not found", func(t *testing.T) {
		handler, mockRepo, _ := newHTTPHandler(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), testOrderID).Return(Order{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/orders/update-order/"+testOrderID, map[string]any{
			"status": "Completed",
		})
		r.SetPathValue("id", testOrderID)

		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("status updated", func(t *testing.T) {
		handler, mockRepo, _ := newHTTPHandler(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), testOrderID).Return(Order{ID: testOrderID, Status: StatusPending, TotalPrice: 25}, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/orders/update-order/"+testOrderID, map[string]any{
			"status": "Completed",
		})
		r.SetPathValue("id", testOrderID)

		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "Completed", data["status"])
		assert.Equal(t, 25.0, data["totalPrice"])
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		handler, mockRepo, _ := newHTTPHandler(t)
		mockRepo.EXPECT().Delete(gomock.Any(), testOrderID).Return(ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/orders/delete-order/"+testOrderID, nil)
		r.SetPathValue("id", testOrderID)

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		handler, mockRepo, _ := newHTTPHandler(t)
		mockRepo.EXPECT().Delete(gomock.Any(), testOrderID).Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/orders/delete-order/"+testOrderID, nil)
		r.SetPathValue("id", testOrderID)

		handler.Delete(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
