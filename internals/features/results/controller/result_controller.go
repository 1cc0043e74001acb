package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madaris_backend/internals/features/reports/cache"
	"madaris_backend/internals/features/results/dto"
	"madaris_backend/internals/features/results/importer"
	"madaris_backend/internals/features/results/model"
	"madaris_backend/internals/features/results/testtype"
)

const batchChunkSize = 100

// ResultController serves one test type. All eight share this code; the
// config decides the table, the field set and the validation rules.
type ResultController struct {
	DB    *gorm.DB
	Cache *cache.Cache
	Cfg   testtype.Config
}

func NewResultController(db *gorm.DB, c *cache.Cache, cfg testtype.Config) *ResultController {
	return &ResultController{DB: db, Cache: c, Cfg: cfg}
}

func (ctrl *ResultController) table() *gorm.DB {
	return ctrl.DB.Table(ctrl.Cfg.Table)
}

// GetResults returns every row of this test type, newest first, shaped to
// exactly the configured field set.
func (ctrl *ResultController) GetResults(c *fiber.Ctx) error {
	var results []model.ResultModel
	if err := ctrl.table().Order("id desc").Find(&results).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب النتائج.")
	}
	rows := make([]map[string]interface{}, 0, len(results))
	for _, m := range results {
		rows = append(rows, dto.ToRow(ctrl.Cfg, m))
	}
	return c.JSON(rows)
}

func (ctrl *ResultController) CreateResult(c *fiber.Ctx) error {
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}

	payload := dto.CoerceForm(ctrl.Cfg, raw)
	if errs := dto.Validate(ctrl.Cfg, payload); len(errs) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(errs, "، "))
	}

	record := dto.ToModel(ctrl.Cfg, payload)
	if err := ctrl.table().Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "هذا السجل موجود بالفعل.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في إضافة النتيجة.")
	}

	ctrl.Cache.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(dto.ToRow(ctrl.Cfg, record))
}

// CreateResultsBatch inserts many rows in one transaction, split into
// bounded chunks. Any invalid record rejects the whole batch before a single
// row is written.
func (ctrl *ResultController) CreateResultsBatch(c *fiber.Ctx) error {
	var raws []map[string]interface{}
	if err := c.BodyParser(&raws); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if len(raws) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "لا توجد سجلات للإضافة.")
	}

	records := make([]model.ResultModel, 0, len(raws))
	for i, raw := range raws {
		payload := dto.CoerceForm(ctrl.Cfg, raw)
		if errs := dto.Validate(ctrl.Cfg, payload); len(errs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("السجل %d: %s", i+1, strings.Join(errs, "، ")))
		}
		records = append(records, dto.ToModel(ctrl.Cfg, payload))
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Table(ctrl.Cfg.Table).CreateInBatches(records, batchChunkSize).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "أحد السجلات موجود بالفعل.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في إضافة النتائج.")
	}

	ctrl.Cache.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"insertedCount": len(records)})
}

func (ctrl *ResultController) UpdateResult(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing model.ResultModel
	if err := ctrl.table().First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "السجل غير موجود.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب السجل.")
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}

	payload := dto.CoerceForm(ctrl.Cfg, raw)
	if errs := dto.Validate(ctrl.Cfg, payload); len(errs) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(errs, "، "))
	}

	updated := dto.ToModel(ctrl.Cfg, payload)
	updated.ID = existing.ID
	updated.DateAdded = existing.DateAdded
	if err := ctrl.table().Save(&updated).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في تحديث السجل.")
	}

	ctrl.Cache.Invalidate(c.Context())
	return c.JSON(dto.ToRow(ctrl.Cfg, updated))
}

func (ctrl *ResultController) DeleteResult(c *fiber.Ctx) error {
	id := c.Params("id")

	res := ctrl.table().Where("id = ?", id).Delete(&model.ResultModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في حذف السجل.")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "السجل غير موجود.")
	}

	ctrl.Cache.Invalidate(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportResults ingests an uploaded workbook for this test type. Valid rows
// go in as one transaction; bad rows come back as a per-row report.
func (ctrl *ResultController) ImportResults(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى إرفاق ملف للاستيراد.")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "حدث خطأ أثناء معالجة الملف.")
	}
	defer file.Close()

	report, err := importer.Parse(ctrl.Cfg, file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	inserted := 0
	if len(report.Valid) > 0 {
		records := make([]model.ResultModel, 0, len(report.Valid))
		for _, payload := range report.Valid {
			records = append(records, dto.ToModel(ctrl.Cfg, payload))
		}
		err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Table(ctrl.Cfg.Table).CreateInBatches(records, batchChunkSize).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "فشل في استيراد النتائج.")
		}
		inserted = len(records)
		ctrl.Cache.Invalidate(c.Context())
	}

	return c.JSON(fiber.Map{
		"insertedCount": inserted,
		"failedCount":   len(report.Errors),
		"message":       report.ErrorMessage(),
	})
}
