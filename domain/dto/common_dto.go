package dto

// Res is the generic response envelope used by handlers and middleware.
type Res struct {
	ResponseCode    string      `json:"responseCode"`
	ResponseMessage string      `json:"responseMessage"`
	Data            interface{} `json:"data,omitempty"`
}

// ResLogin carries the JWT issued at login.
type ResLogin struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
	AccessToken     string `json:"accessToken"`
}

// ReqLogin is the login request body.
type ReqLogin struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ReqRegister is the registration request body.
type ReqRegister struct {
	Name     string `json:"name" binding:"required"`
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}
