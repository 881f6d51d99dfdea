package web

import (
	"bytes"
	"context"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"employee-portal/internal/auth"
	"employee-portal/internal/capture"
	"employee-portal/internal/chart"
	"employee-portal/internal/employee"
	"employee-portal/internal/geo"
	"employee-portal/internal/navstate"
	"employee-portal/models"
	"github.com/gorilla/mux"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgFetchFailed        = "Failed to fetch data"

	// Form values carry a base64 data URL, so allow for the encoding overhead.
	maxPhotoFormBytes = capture.MaxBytes*4/3 + 64<<10

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// EmployeeFinder is the part of the employee service the views need.
type EmployeeFinder interface {
	FindAll(ctx context.Context) ([]models.Employee, error)
}

type WebHandler struct {
	employeeService EmployeeFinder
	geoService      *geo.GeoService
	guard           *auth.Guard
	navigation      *navstate.Store
	templates       map[string]*template.Template
}

type PageData struct {
	Page     string
	SignedIn bool
	Username string
	Error    string

	Employees []models.Employee
	Employee  *models.Employee
	Index     int

	Photo    template.URL
	HasPhoto bool

	Chart chart.Chart

	Markers   []models.Marker
	CenterLat float64
	CenterLng float64
	Zoom      int
	TileURL   string
	TileAttr  string
}

func NewWebHandler(
	employeeService EmployeeFinder,
	geoService *geo.GeoService,
	guard *auth.Guard,
	navigation *navstate.Store,
) (*WebHandler, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &WebHandler{
		employeeService: employeeService,
		geoService:      geoService,
		guard:           guard,
		navigation:      navigation,
		templates:       templates,
	}, nil
}

func (h *WebHandler) render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := h.templates[page]
	if !ok {
		http.Error(w, "template "+page+" not found", http.StatusInternalServerError)
		return
	}

	data.Page = page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Printf("Template execution error for %s: %v", page, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func sessionFrom(r *http.Request) *auth.Session {
	if s, ok := auth.FromContext(r.Context()); ok {
		return s
	}
	return &auth.Session{}
}

func pageFor(session *auth.Session) PageData {
	return PageData{SignedIn: session.Authenticated, Username: session.Username}
}

// Page Handlers
func (h *WebHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.guard.Current(r).Authenticated {
		http.Redirect(w, r, "/list", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "login", PageData{})
}

func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	ok, err := h.guard.Login(w, r, username, password)
	if err != nil {
		log.Printf("Error saving login session: %v", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.render(w, http.StatusOK, "login", PageData{
			Error:    msgInvalidCredentials,
			Username: username,
		})
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/list")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/list", http.StatusSeeOther)
}

func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.navigation.Clear(h.guard.Current(r).NavigationID)
	if err := h.guard.Logout(w, r); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

func (h *WebHandler) List(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	data := pageFor(session)

	employees, err := h.employeeService.FindAll(r.Context())
	if err != nil {
		data.Error = msgFetchFailed
		h.render(w, http.StatusBadGateway, "list", data)
		return
	}

	h.navigation.PutEmployees(session.NavigationID, employees)
	data.Employees = employees
	h.render(w, http.StatusOK, "list", data)
}

func (h *WebHandler) Export(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.FindAll(r.Context())
	if err != nil {
		http.Error(w, msgFetchFailed, http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := employee.WriteWorkbook(&buf, employees); err != nil {
		log.Printf("Error writing employee workbook: %v", err)
		http.Error(w, "Failed to build workbook", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="employees.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}

func (h *WebHandler) Details(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	data := pageFor(session)

	idx, err := strconv.Atoi(mux.Vars(r)["id"])
	if err == nil {
		if e, ok := h.navigation.Employee(session.NavigationID, idx); ok {
			data.Employee = &e
			data.Index = idx
		}
	}
	h.render(w, http.StatusOK, "details", data)
}

func (h *WebHandler) SavePhoto(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Captured image is too large", http.StatusRequestEntityTooLarge)
		return
	}

	img, err := capture.ParseDataURL(r.PostFormValue("image"), capture.MaxBytes)
	if err != nil {
		log.Printf("Rejected captured image: %v", err)
		http.Error(w, "Invalid captured image", http.StatusBadRequest)
		return
	}
	img.EmployeeIndex = -1
	if idx, err := strconv.Atoi(r.PostFormValue("employee")); err == nil && idx >= 0 {
		img.EmployeeIndex = idx
	}

	h.navigation.PutPhoto(session.NavigationID, *img)
	http.Redirect(w, r, "/photo", http.StatusSeeOther)
}

func (h *WebHandler) Photo(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	data := pageFor(session)
	data.Index = -1

	if img, ok := h.navigation.TakePhoto(session.NavigationID); ok {
		data.HasPhoto = true
		data.Photo = template.URL(img.DataURL())
		data.Index = img.EmployeeIndex
	}
	w.Header().Set("Cache-Control", "no-store")
	h.render(w, http.StatusOK, "photo", data)
}

func (h *WebHandler) Graph(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	employees, err := h.employeeService.FindAll(r.Context())
	if err != nil {
		employees = nil
	}
	data := pageFor(session)
	data.Chart = chart.Build(employees, chart.DefaultLimit)
	h.render(w, http.StatusOK, "graph", data)
}

func (h *WebHandler) Map(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	employees, err := h.employeeService.FindAll(r.Context())
	if err != nil {
		employees = nil
	}
	data := pageFor(session)
	data.Markers = h.geoService.Markers(r.Context(), employees)
	data.CenterLat = geo.CenterLat
	data.CenterLng = geo.CenterLng
	data.Zoom = geo.DefaultZoom
	data.TileURL = geo.TileURL
	data.TileAttr = geo.TileAttribution
	h.render(w, http.StatusOK, "map", data)
}

func (h *WebHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (h *WebHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "notfound", PageData{})
}
