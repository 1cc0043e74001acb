package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeAPI serves a minimal schools resource backed by a slice.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schools", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"id":2,"schoolNameAr":"مدرسة اربد","nationalId":"111002"},{"id":1,"schoolNameAr":"مدرسة الزرقاء","nationalId":"111001"}]`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":3,"schoolNameAr":"مدرسة عمان","nationalId":"111003"}`))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/schools/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"id":1,"schoolNameAr":"مدرسة الزرقاء المحدثة","nationalId":"111001"}`))
	})
	mux.HandleFunc("/api/schools/2", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return httptest.NewServer(mux)
}

func TestStoreLoadAndMutate(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	store := NewStore(NewGateway(srv.URL))
	ctx := context.Background()

	if !store.Load(ctx, "schools") {
		t.Fatalf("Load failed: %v", store.Err())
	}
	if rows := store.Rows("schools"); len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	t.Run("add prepends echo", func(t *testing.T) {
		if !store.AddItem(ctx, "schools", map[string]string{"schoolNameAr": "مدرسة عمان"}) {
			t.Fatalf("AddItem failed: %v", store.Err())
		}
		rows := store.Rows("schools")
		if len(rows) != 3 {
			t.Fatalf("rows = %d, want 3", len(rows))
		}
		if rowID(rows[0]) != 3 {
			t.Errorf("new row not first: %+v", rows[0])
		}
	})

	t.Run("update replaces by id", func(t *testing.T) {
		if !store.UpdateItem(ctx, "schools", 1, map[string]string{}) {
			t.Fatalf("UpdateItem failed: %v", store.Err())
		}
		for _, row := range store.Rows("schools") {
			if rowID(row) == 1 && row["schoolNameAr"] != "مدرسة الزرقاء المحدثة" {
				t.Errorf("row 1 not replaced: %+v", row)
			}
		}
	})

	t.Run("remove filters by id", func(t *testing.T) {
		if !store.RemoveItem(ctx, "schools", 2) {
			t.Fatalf("RemoveItem failed: %v", store.Err())
		}
		for _, row := range store.Rows("schools") {
			if rowID(row) == 2 {
				t.Errorf("row 2 still present")
			}
		}
	})
}

func TestStoreErrorSetAndCleared(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"الرقم الوطني '111001' مسجل لمدرسة أخرى."}`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := NewStore(NewGateway(srv.URL))
	ctx := context.Background()

	if store.AddItem(ctx, "schools", map[string]string{}) {
		t.Fatal("AddItem should fail")
	}
	var conflict *ConflictError
	if !errors.As(store.Err(), &conflict) {
		t.Fatalf("Err() = %T %v, want ConflictError", store.Err(), store.Err())
	}

	// the next operation clears the sticky error
	if !store.Load(ctx, "schools") {
		t.Fatalf("Load failed: %v", store.Err())
	}
	if store.Err() != nil {
		t.Errorf("Err() = %v after success, want nil", store.Err())
	}
}

func TestFilterRows(t *testing.T) {
	store := NewStore(NewGateway(""))
	store.rows["schools"] = []map[string]interface{}{
		{"id": 1.0, "nationalId": "111001", "schoolNameAr": "مدرسة الزرقاء", "schoolNameEn": "Zarqa School"},
		{"id": 2.0, "nationalId": "111002", "schoolNameAr": "مدرسة اربد", "schoolNameEn": "Irbid School"},
	}
	store.rows["pisaResults"] = []map[string]interface{}{
		{"id": 1.0, "schoolNationalId": "111001", "subject": "العلوم", "year": 2022.0, "score": 430.5},
		{"id": 2.0, "schoolNationalId": "111002", "subject": "العلوم", "year": 2023.0, "score": 415.0},
		{"id": 3.0, "schoolNationalId": "111001", "subject": "القرائية", "year": 2023.0, "score": 395.0},
	}

	tests := []struct {
		name   string
		query  string
		school string
		want   int
	}{
		{"no filter", "", "", 3},
		{"query only", "العلوم", "", 2},
		{"school scope only", "", "111001", 2},
		{"school scope and query", "العلوم", "111001", 1},
		{"arabic school name", "الزرقاء", "", 2},
		{"english school name", "Irbid", "", 1},
		{"raw national id", "111002", "", 1},
		{"numeric year", "2023", "", 2},
		{"numeric score", "430.5", "", 1},
		{"no match", "الرياضيات", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.FilterRows("pisaResults", tt.query, tt.school)
			if len(got) != tt.want {
				t.Errorf("rows = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRowsIsolatedFromMutations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := NewStore(NewGateway(srv.URL))
	store.rows["schools"] = []map[string]interface{}{
		{"id": 3.0, "schoolNameAr": "مدرسة عمان"},
		{"id": 2.0, "schoolNameAr": "مدرسة اربد"},
		{"id": 1.0, "schoolNameAr": "مدرسة الزرقاء"},
	}

	before := store.Rows("schools")

	if !store.RemoveItem(context.Background(), "schools", 2) {
		t.Fatalf("RemoveItem failed: %v", store.Err())
	}

	// the earlier snapshot must survive the compaction untouched
	if len(before) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(before))
	}
	if rowID(before[1]) != 2 {
		t.Errorf("snapshot mutated: before[1] id = %d, want 2", rowID(before[1]))
	}
	if len(store.Rows("schools")) != 2 {
		t.Errorf("cache = %d rows, want 2", len(store.Rows("schools")))
	}
}

func TestRowID(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]interface{}
		want uint
	}{
		{"json float", map[string]interface{}{"id": 7.0}, 7},
		{"int", map[string]interface{}{"id": 7}, 7},
		{"string", map[string]interface{}{"id": "7"}, 7},
		{"missing", map[string]interface{}{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rowID(tt.row); got != tt.want {
				t.Errorf("rowID = %d, want %d", got, tt.want)
			}
		})
	}
}
