package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"madaris_backend/internals/constants"
	helper "madaris_backend/internals/helpers"

	schoolmodel "madaris_backend/internals/features/schools/model"
	"madaris_backend/internals/features/users/dto"
	"madaris_backend/internals/features/users/model"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetUsers lists all accounts, newest first. Password hashes never leave
// the model (json:"-").
func (ctrl *UserController) GetUsers(c *fiber.Ctx) error {
	var users []model.ManagedUserModel
	if err := ctrl.DB.Order("id desc").Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات المستخدمين.")
	}
	return c.JSON(users)
}

func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى تعبئة جميع الحقول المطلوبة.")
	}
	if !constants.IsValidRole(req.Role) {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("الدور '%s' غير معروف.", req.Role))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في إنشاء الحساب.")
	}

	user := model.ManagedUserModel{
		Username:   req.Username,
		Password:   string(hash),
		Role:       req.Role,
		NationalID: req.NationalID,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("اسم المستخدم '%s' مستخدم بالفعل.", user.Username))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في إنشاء الحساب.")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user model.ManagedUserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "المستخدم غير موجود.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات المستخدم.")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى تعبئة جميع الحقول المطلوبة.")
	}
	if !constants.IsValidRole(req.Role) {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("الدور '%s' غير معروف.", req.Role))
	}

	user.Username = req.Username
	user.Role = req.Role
	user.NationalID = req.NationalID
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "فشل في تحديث الحساب.")
		}
		user.Password = string(hash)
	}

	if err := ctrl.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("اسم المستخدم '%s' مستخدم بالفعل.", user.Username))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في تحديث الحساب.")
	}
	return c.JSON(user)
}

// DeleteUser removes an account. The last admin can never be deleted, so the
// system always keeps at least one account able to manage users.
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user model.ManagedUserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "المستخدم غير موجود.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في جلب بيانات المستخدم.")
	}

	if user.Role == constants.RoleAdmin {
		var admins int64
		if err := ctrl.DB.Model(&model.ManagedUserModel{}).
			Where("role = ?", constants.RoleAdmin).Count(&admins).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "فشل في حذف المستخدم.")
		}
		if admins <= 1 {
			return fiber.NewError(fiber.StatusBadRequest, "لا يمكن حذف آخر مسؤول في النظام.")
		}
	}

	if err := ctrl.DB.Delete(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في حذف المستخدم.")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Login checks credentials and resolves the caller's display identity. A
// manager's school is looked up by national id; a manager with no matching
// school still logs in, flagged as new.
func (ctrl *UserController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى إدخال اسم المستخدم وكلمة المرور.")
	}

	var user model.ManagedUserModel
	if err := ctrl.DB.First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "اسم المستخدم أو كلمة المرور غير صحيحة.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في تسجيل الدخول.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "اسم المستخدم أو كلمة المرور غير صحيحة.")
	}

	var school *schoolmodel.SchoolModel
	if user.Role == constants.RoleManager {
		// managers created under the old convention carry the school's
		// national id as their username
		nationalID := user.NationalID
		if nationalID == "" {
			nationalID = user.Username
		}
		var s schoolmodel.SchoolModel
		err := ctrl.DB.First(&s, "\"nationalId\" = ?", nationalID).Error
		switch {
		case err == nil:
			school = &s
		case errors.Is(err, gorm.ErrRecordNotFound):
			// new manager, school not registered yet
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "فشل في تسجيل الدخول.")
		}
	}

	session := dto.ResolveSession(user, school)

	schoolID := ""
	if session.SchoolID != 0 {
		schoolID = fmt.Sprint(session.SchoolID)
	}
	token, err := helper.CreateToken(user.ID, user.Username, user.Role, schoolID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في تسجيل الدخول.")
	}
	session.Token = token

	return c.JSON(session)
}

// ChangePassword verifies the current password before storing the new hash.
func (ctrl *UserController) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "البيانات المرسلة غير صالحة.")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "يرجى تعبئة جميع الحقول المطلوبة.")
	}

	var user model.ManagedUserModel
	if err := ctrl.DB.First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "المستخدم غير موجود.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في تغيير كلمة المرور.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "كلمة المرور الحالية غير صحيحة.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في تغيير كلمة المرور.")
	}
	user.Password = string(hash)
	if err := ctrl.DB.Save(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "فشل في تغيير كلمة المرور.")
	}

	return c.JSON(fiber.Map{"message": "تم تغيير كلمة المرور بنجاح."})
}
