package usecase

import (
	"context"
	"strconv"
	"time"

	"content-ops/domain/dto"
	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/configuration"
	"content-ops/infrastructure/logger"
	"content-ops/infrastructure/utils"
)

type IUserUsecase interface {
	Login(ctx context.Context, req dto.ReqLogin) dto.ResLogin
	Register(ctx context.Context, req dto.ReqRegister) dto.Res
}

type userUsecase struct {
	userRepo repository.IUser
}

func NewUserUsecase(userRepo repository.IUser) IUserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) Login(ctx context.Context, req dto.ReqLogin) dto.ResLogin {
	res := dto.ResLogin{ResponseCode: "401", ResponseMessage: "Unauthorized"}

	user, err := u.userRepo.GetByUserName(ctx, req.UserName)
	if err != nil {
		logger.GetLogger().WithField("user_name", req.UserName).Info("login attempt for unknown user")
		return res
	}
	if user.Password != req.Password {
		return res
	}

	now := time.Now().UTC()
	payload := map[string]interface{}{
		"iss":       strconv.Itoa(user.ID),
		"user_name": user.UserName,
		"name":      user.Name,
		"iat":       now.Unix(),
		"exp":       now.Add(24 * time.Hour).Unix(),
	}
	token, err := utils.GenerateToken(payload, configuration.C.App.SecretKey)
	if err != nil {
		res.ResponseCode = "500"
		res.ResponseMessage = "General Error"
		return res
	}

	res.ResponseCode = "200"
	res.ResponseMessage = "Success"
	res.AccessToken = token
	return res
}

func (u *userUsecase) Register(ctx context.Context, req dto.ReqRegister) dto.Res {
	var res dto.Res

	if _, err := u.userRepo.GetByUserName(ctx, req.UserName); err == nil {
		res.ResponseCode = "409"
		res.ResponseMessage = "User already exists"
		return res
	}

	user := model.User{
		Name:     req.Name,
		UserName: req.UserName,
		Password: req.Password,
	}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while create user")
		res.ResponseCode = "500"
		res.ResponseMessage = "General Error"
		return res
	}

	res.ResponseCode = "200"
	res.ResponseMessage = "Success"
	return res
}
