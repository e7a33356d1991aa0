package client

import "time"

const (
	// DefaultTimeout applies when the config does not set one.
	DefaultTimeout = 30 * time.Second

	// SuccessCode is the envelope code of a successful call.
	SuccessCode = 200
)

// User-facing messages raised by the pipeline.
const (
	MsgRequestFailed  = "请求失败"
	MsgLoginRequired  = "请先登录"
	MsgHTTPError      = "网络错误"
	MsgNetworkFailure = "网络请求失败"
)
