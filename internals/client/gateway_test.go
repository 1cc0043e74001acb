package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoClassifiesStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		check   func(error) bool
	}{
		{"not found", http.StatusNotFound, "المدرسة غير موجودة.", func(err error) bool {
			var e *NotFoundError
			return errors.As(err, &e) && e.Message == "المدرسة غير موجودة."
		}},
		{"conflict", http.StatusConflict, "الرقم الوطني '111001' مسجل لمدرسة أخرى.", func(err error) bool {
			var e *ConflictError
			return errors.As(err, &e)
		}},
		{"validation", http.StatusBadRequest, "حقل 'العلامة' مطلوب", func(err error) bool {
			var e *ValidationError
			return errors.As(err, &e)
		}},
		{"server", http.StatusInternalServerError, "", func(err error) bool {
			var e *ServerError
			return errors.As(err, &e) && e.Message == "حدث خطأ في الخادم."
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.message != "" {
					w.Write([]byte(`{"message":"` + tt.message + `"}`))
				}
			}))
			defer srv.Close()

			g := NewGateway(srv.URL)
			_, err := g.ListAll(context.Background(), "schools")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !tt.check(err) {
				t.Errorf("wrong error type: %T %v", err, err)
			}
		})
	}
}

func TestDoNetworkError(t *testing.T) {
	g := NewGateway("http://127.0.0.1:1")
	_, err := g.ListAll(context.Background(), "schools")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("wrong error type: %T %v", err, err)
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-123","userId":1,"username":"admin","role":"admin","displayName":"مسؤول النظام"}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL)
	session, err := g.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatal(err)
	}
	if session.DisplayName != "مسؤول النظام" {
		t.Errorf("displayName = %q", session.DisplayName)
	}
	if g.token != "tok-123" {
		t.Errorf("token not retained: %q", g.token)
	}
}

func TestAuthorizationHeaderSent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL)
	g.SetToken("tok-123")
	if _, err := g.ListAll(context.Background(), "schools"); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer tok-123" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestCreateBatchReadsInsertedCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pisaResults/batch" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"insertedCount":42}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL)
	n, err := g.CreateBatch(context.Background(), "pisaResults", []map[string]interface{}{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Errorf("insertedCount = %d", n)
	}
}

func TestAllReportDataIsFlat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reports/all-data" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"schools":[{"id":1,"nationalId":"111001","schoolNameAr":"مدرسة الزرقاء"}],
			"timssResults":[{"id":1,"schoolNationalId":"111001","year":2023,"score":512}],
			"pisaResults":[]
		}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL)
	data, err := g.AllReportData(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Schools()) != 1 {
		t.Errorf("schools = %d, want 1", len(data.Schools()))
	}
	if rows := data.ResultsFor("timssResults"); len(rows) != 1 || rows[0]["year"] != 2023.0 {
		t.Errorf("timssResults = %v", rows)
	}
	if rows := data.ResultsFor("pisaResults"); rows == nil || len(rows) != 0 {
		t.Errorf("pisaResults = %v, want empty array", rows)
	}
}

func TestDeleteHandlesNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL)
	if err := g.Delete(context.Background(), "schools", 7); err != nil {
		t.Fatal(err)
	}
}
