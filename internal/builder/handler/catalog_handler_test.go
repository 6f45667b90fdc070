package handler

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/testutil"
)

func TestCatalog_Search(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name  string
		path  string
		total float64
	}{
		{"all", "/api/v1/components", 14},
		{"by kind", "/api/v1/components?kind=CPU", 2},
		{"by kind lower case", "/api/v1/components?kind=gpu", 2},
		{"text", "/api/v1/components?q=noctua", 1},
		{"paged", "/api/v1/components?page=2&page_size=10", 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.DoSessionRequest(env.router, "GET", tt.path, nil)
			if w.Code != 200 {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if total := testutil.ResponseData(w)["total"]; total != tt.total {
				t.Errorf("expected total %v, got %v", tt.total, total)
			}
		})
	}

	w := testutil.DoSessionRequest(env.router, "GET", "/api/v1/components?page=2&page_size=10", nil)
	if items := testutil.ResponseData(w)["items"].([]interface{}); len(items) != 4 {
		t.Errorf("expected 4 items on page 2, got %d", len(items))
	}
}

func TestCatalog_SearchAgainstSessionBuild(t *testing.T) {
	env := setupEnv(t)

	testutil.DoSessionRequest(env.router, "PUT", "/api/v1/build/components",
		map[string]string{"objectID": "cpu-amd-ryzen-7-7700x"})

	// annotated but unfiltered
	w := testutil.DoSessionRequest(env.router, "GET", "/api/v1/components?kind=Motherboard", nil)
	data := testutil.ResponseData(w)
	if data["total"] != float64(2) {
		t.Fatalf("expected 2 motherboards, got %v", data["total"])
	}
	statuses := map[string]string{}
	for _, it := range data["items"].([]interface{}) {
		hit := it.(map[string]interface{})
		id := hit["component"].(map[string]interface{})["objectID"].(string)
		statuses[id] = hit["compatibility"].(map[string]interface{})["status"].(string)
	}
	if statuses["motherboard-asus-tuf-b650-plus"] != "compatible" {
		t.Errorf("expected AM5 board compatible, got %v", statuses)
	}
	if statuses["motherboard-msi-pro-b660m-a"] != "incompatible" {
		t.Errorf("expected LGA1700 board incompatible, got %v", statuses)
	}

	// narrowed by the derived filters
	w = testutil.DoSessionRequest(env.router, "GET", "/api/v1/components?kind=Motherboard&apply_filters=true", nil)
	data = testutil.ResponseData(w)
	if data["total"] != float64(1) {
		t.Errorf("expected 1 filtered motherboard, got %v", data["total"])
	}
	filters := data["filters"].(map[string]interface{})
	if filters["socket"] != "AM5" {
		t.Errorf("expected socket filter AM5, got %v", filters["socket"])
	}
}

func TestCatalog_SearchUnknownKind(t *testing.T) {
	env := setupEnv(t)

	w := testutil.DoSessionRequest(env.router, "GET", "/api/v1/components?kind=monitor", nil)
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCatalog_Get(t *testing.T) {
	env := setupEnv(t)

	w := testutil.DoSessionRequest(env.router, "GET", "/api/v1/components/psu-corsair-rm850x", nil)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data := testutil.ResponseData(w)
	if data["wattage"] != float64(850) || data["component_type"] != "PSU" {
		t.Errorf("unexpected component: %v", data)
	}

	w = testutil.DoSessionRequest(env.router, "GET", "/api/v1/components/psu-missing", nil)
	if w.Code != 404 {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCatalog_Stats(t *testing.T) {
	env := setupEnv(t)

	w := testutil.DoSessionRequest(env.router, "GET", "/api/v1/components/stats", nil)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	counts, _ := testutil.ParseResponse(w)["data"].([]interface{})
	if len(counts) != 7 {
		t.Fatalf("expected 7 kinds, got %v", counts)
	}
	for _, c := range counts {
		if n := c.(map[string]interface{})["count"]; n != float64(2) {
			t.Errorf("expected 2 per kind, got %v", c)
		}
	}
}

func TestCatalog_AdminRequiresPermission(t *testing.T) {
	env := setupEnv(t)

	w := testutil.DoRequest(env.router, "POST", "/api/v1/admin/components/import", `[]`, "")
	if w.Code != 401 {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}

	reader := testutil.GenerateTestToken("viewer-001", "Viewer", []string{"catalog:read"})
	w = testutil.DoRequest(env.router, "POST", "/api/v1/admin/components/import", `[]`, reader)
	if w.Code != 403 {
		t.Errorf("missing permission: expected 403, got %d", w.Code)
	}

	root := testutil.GenerateTestToken("root-001", "Root", []string{"*"})
	w = testutil.DoRequest(env.router, "POST", "/api/v1/admin/components/import", `[]`, root)
	if w.Code != 200 {
		t.Errorf("wildcard permission: expected 200, got %d", w.Code)
	}
}

func TestCatalog_ImportJSON(t *testing.T) {
	env := setupEnv(t)

	body := `[
		{"component_type":"RAM","brand":"Kingston","model":"Fury Beast 32GB","price_usd":99,"memory_type":"DDR5-5600","capacity_gb":16,"modules":2,"speed_mhz":5600},
		{"component_type":"Monitor","brand":"Acme"}
	]`
	w := testutil.DoRequest(env.router, "POST", "/api/v1/admin/components/import", body, testutil.DefaultTestToken())
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ResponseData(w)
	if data["imported"] != float64(1) || data["errors"] != float64(1) {
		t.Errorf("unexpected import result: %v", data)
	}

	w = testutil.DoSessionRequest(env.router, "GET", "/api/v1/components/ram-kingston-fury-beast-32gb", nil)
	if w.Code != 200 {
		t.Fatalf("expected imported RAM to be retrievable, got %d", w.Code)
	}
	if mt := testutil.ResponseData(w)["memory_type"]; mt != "DDR5" {
		t.Errorf("expected normalized memory type DDR5, got %v", mt)
	}

	w = testutil.DoRequest(env.router, "POST", "/api/v1/admin/components/import", `{"not":"an array"}`, testutil.DefaultTestToken())
	if w.Code != 400 {
		t.Errorf("non-array import: expected 400, got %d", w.Code)
	}
}

func TestCatalog_ExportImportWorkbook(t *testing.T) {
	env := setupEnv(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.router, "GET", "/api/v1/admin/components/export", nil, token)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "catalog_") {
		t.Errorf("unexpected content disposition %q", cd)
	}

	workbook := w.Body.Bytes()
	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		t.Fatalf("exported workbook unreadable: %v", err)
	}
	if sheets := f.GetSheetList(); len(sheets) != 7 || sheets[0] != "CPU" {
		t.Errorf("unexpected sheets %v", sheets)
	}
	f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "catalog.xlsx")
	part.Write(workbook)
	mw.Close()

	w = testutil.DoRequestWithHeaders(env.router, "POST", "/api/v1/admin/components/import", buf.Bytes(), map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  mw.FormDataContentType(),
	})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ResponseData(w)
	if data["imported"] != float64(14) || data["errors"] != float64(0) {
		t.Errorf("unexpected import result: %v", data)
	}
}

func TestCatalog_ImportMultipartWithoutFile(t *testing.T) {
	env := setupEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("note", "no file")
	mw.Close()

	w := testutil.DoRequestWithHeaders(env.router, "POST", "/api/v1/admin/components/import", buf.Bytes(), map[string]string{
		"Authorization": "Bearer " + testutil.DefaultTestToken(),
		"Content-Type":  mw.FormDataContentType(),
	})
	if w.Code != 400 {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCatalog_ArchiveWithoutStorage(t *testing.T) {
	env := setupEnv(t)

	w := testutil.DoRequest(env.router, "POST", "/api/v1/admin/components/archive", nil, testutil.DefaultTestToken())
	if w.Code != 503 {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if code := testutil.ParseResponse(w)["code"]; code != float64(50300) {
		t.Errorf("expected code 50300, got %v", code)
	}
}

func TestCatalog_Delete(t *testing.T) {
	env := setupEnv(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.router, "DELETE", "/api/v1/admin/components/psu-corsair-rm850x", nil, token)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := testutil.ResponseData(w)["deleted"]; got != "psu-corsair-rm850x" {
		t.Errorf("unexpected response: %v", got)
	}

	w = testutil.DoSessionRequest(env.router, "GET", "/api/v1/components/psu-corsair-rm850x", nil)
	if w.Code != 404 {
		t.Errorf("deleted component still served: %d", w.Code)
	}

	w = testutil.DoRequest(env.router, "DELETE", "/api/v1/admin/components/psu-corsair-rm850x", nil, token)
	if w.Code != 404 {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}
