package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madaris_backend/internals/features/reports/cache"
	"madaris_backend/internals/features/results/importer"
	"madaris_backend/internals/features/schools/dto"
	"madaris_backend/internals/features/schools/model"
)

var validate = validator.New()

// batchChunkSize keeps multi-row inserts bounded; a batch larger than this
// is split across several INSERTs inside one transaction.
const batchChunkSize = 100

type SchoolController struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewSchoolController(db *gorm.DB, c *cache.Cache) *SchoolController {
	return &SchoolController{DB: db, Cache: c}
}

// GetSchools returns every school, newest first.
func (ctrl *SchoolController) GetSchools(c *fiber.Ctx) error {
	var schools []model.SchoolModel
	if err := ctrl.DB.Order("id desc").Find(&schools).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات المدارس.")
	}
	return c.JSON(schools)
}

func (ctrl *SchoolController) CreateSchool(c *fiber.Ctx) error {
	var req dto.SchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى تعبئة جميع الحقول المطلوبة.")
	}
	if err := req.ValidateEnums(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	school := req.ToModel()
	if err := ctrl.DB.Create(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("الرقم الوطني '%s' مسجل لمدرسة أخرى.", school.NationalID))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في إضافة المدرسة.")
	}

	ctrl.Cache.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(school)
}

// CreateSchoolsBatch inserts many schools in one transaction. All rows must
// be valid and free of duplicates or nothing is written.
func (ctrl *SchoolController) CreateSchoolsBatch(c *fiber.Ctx) error {
	var reqs []dto.SchoolRequest
	if err := c.BodyParser(&reqs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if len(reqs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "لا توجد سجلات للإضافة.")
	}

	schools := make([]model.SchoolModel, 0, len(reqs))
	for i, req := range reqs {
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("السجل %d غير مكتمل: يرجى تعبئة جميع الحقول المطلوبة.", i+1))
		}
		if err := req.ValidateEnums(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("السجل %d: %s", i+1, err.Error()))
		}
		schools = append(schools, req.ToModel())
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(schools, batchChunkSize).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "أحد الأرقام الوطنية مسجل لمدرسة أخرى.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في إضافة المدارس.")
	}

	ctrl.Cache.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"insertedCount": len(schools)})
}

func (ctrl *SchoolController) UpdateSchool(c *fiber.Ctx) error {
	id := c.Params("id")

	var school model.SchoolModel
	if err := ctrl.DB.First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "المدرسة غير موجودة.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات المدرسة.")
	}

	var req dto.SchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى تعبئة جميع الحقول المطلوبة.")
	}
	if err := req.ValidateEnums(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updated := req.ToModel()
	updated.ID = school.ID
	updated.DateAdded = school.DateAdded
	if err := ctrl.DB.Save(&updated).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("الرقم الوطني '%s' مسجل لمدرسة أخرى.", updated.NationalID))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في تحديث بيانات المدرسة.")
	}

	ctrl.Cache.Invalidate(c.Context())
	return c.JSON(updated)
}

func (ctrl *SchoolController) DeleteSchool(c *fiber.Ctx) error {
	id := c.Params("id")

	res := ctrl.DB.Delete(&model.SchoolModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في حذف المدرسة.")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "المدرسة غير موجودة.")
	}

	ctrl.Cache.Invalidate(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportSchools ingests an uploaded workbook. Valid rows are inserted in one
// transaction; invalid rows are reported back with their sheet row numbers.
func (ctrl *SchoolController) ImportSchools(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى إرفاق ملف للاستيراد.")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "حدث خطأ أثناء معالجة الملف.")
	}
	defer file.Close()

	rows, err := importer.ReadSheet(file, dto.RequiredImportHeaders)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var (
		schools []model.SchoolModel
		rowErrs []importer.RowError
	)
	for _, row := range rows {
		req := dto.FromSheetRow(row.Cells)
		var reasons []string
		for _, f := range []struct{ label, value string }{
			{"اسم المدرسة (عربي)", req.SchoolNameAr},
			{"الرقم الوطني", req.NationalID},
			{"اسم المدير", req.PrincipalName},
		} {
			if strings.TrimSpace(f.value) == "" {
				reasons = append(reasons, fmt.Sprintf("حقل '%s' مطلوب", f.label))
			}
		}
		if err := req.ValidateEnums(); err != nil {
			reasons = append(reasons, err.Error())
		}
		if len(reasons) > 0 {
			rowErrs = append(rowErrs, importer.RowError{Row: row.Number, Reasons: reasons})
			continue
		}
		schools = append(schools, req.ToModel())
	}

	inserted := 0
	if len(schools) > 0 {
		err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
			return tx.CreateInBatches(schools, batchChunkSize).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "أحد الأرقام الوطنية في الملف مسجل لمدرسة أخرى.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "فشل في استيراد المدارس.")
		}
		inserted = len(schools)
		ctrl.Cache.Invalidate(c.Context())
	}

	report := importer.Result{Errors: rowErrs}
	return c.JSON(fiber.Map{
		"insertedCount": inserted,
		"failedCount":   len(rowErrs),
		"message":       report.ErrorMessage(),
	})
}
