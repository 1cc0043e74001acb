package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madaris_backend/internals/features/reports/cache"
	"madaris_backend/internals/features/reports/dto"
	"madaris_backend/internals/features/reports/exporter"
	"madaris_backend/internals/features/reports/service"
	"madaris_backend/internals/features/results/testtype"
	schoolmodel "madaris_backend/internals/features/schools/model"
)

var validate = validator.New()

type ReportController struct {
	DB      *gorm.DB
	Cache   *cache.Cache
	Service *service.ReportService
}

func NewReportController(db *gorm.DB, c *cache.Cache) *ReportController {
	return &ReportController{DB: db, Cache: c, Service: service.NewReportService(db)}
}

// GetAllData serves the denormalized aggregate the report pages work from.
// The Redis cache absorbs repeated loads; mutations invalidate it.
func (ctrl *ReportController) GetAllData(c *fiber.Ctx) error {
	if cached, ok := ctrl.Cache.Get(c.Context(), cache.AllDataKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	data, err := ctrl.Service.AllData()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات التقارير.")
	}

	body, err := sonic.Marshal(data)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات التقارير.")
	}
	ctrl.Cache.Set(c.Context(), cache.AllDataKey, body)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GetTrend returns one school's average score per year for a test type,
// narrowed by the optional filter dimensions.
func (ctrl *ReportController) GetTrend(c *fiber.Ctx) error {
	cfg, ok := testtype.Lookup(c.Query("type"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "نوع الاختبار غير معروف.")
	}
	nationalID := c.Query("school")
	if nationalID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى تحديد المدرسة.")
	}

	var filter dto.Filter
	if err := c.QueryParser(&filter); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "معايير التصفية غير صالحة.")
	}

	rows, err := ctrl.Service.ResultsFor(cfg)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب النتائج.")
	}
	points := service.TrendSeries(service.FilterRows(rows, filter), nationalID)
	return c.JSON(service.TrendResponseFor(cfg, points))
}

// GetComparison builds one trend line per selected school (at most four).
func (ctrl *ReportController) GetComparison(c *fiber.Ctx) error {
	cfg, ok := testtype.Lookup(c.Query("type"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "نوع الاختبار غير معروف.")
	}

	var nationalIDs []string
	for _, id := range strings.Split(c.Query("schools"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			nationalIDs = append(nationalIDs, id)
		}
	}

	var filter dto.Filter
	if err := c.QueryParser(&filter); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "معايير التصفية غير صالحة.")
	}

	schools, err := ctrl.Service.Schools()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات المدارس.")
	}
	rows, err := ctrl.Service.ResultsFor(cfg)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب النتائج.")
	}

	series, err := service.ComparisonSeries(schools, service.FilterRows(rows, filter), nationalIDs)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(service.ComparisonResponseFor(cfg, series))
}

// ExportSchoolReport streams one school's full report as an xlsx download.
func (ctrl *ReportController) ExportSchoolReport(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى تحديد المدرسة.")
	}

	var school schoolmodel.SchoolModel
	if err := ctrl.DB.First(&school, "\"nationalId\" = ?", req.NationalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "المدرسة غير موجودة.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات المدرسة.")
	}

	report, err := ctrl.Service.BuildSchoolReport(school)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في إنشاء التقرير.")
	}

	workbook, err := exporter.SchoolReportWorkbook(report)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في إنشاء التقرير.")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exporter.Filename(time.Now())+`"`)
	return workbook.Write(c.Response().BodyWriter())
}
