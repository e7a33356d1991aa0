package shell

// User-facing messages raised by shell actions.
const (
	msgInvalidPhone     = "请输入正确的手机号"
	msgIncompleteLogin  = "请填写完整信息"
	msgSMSSent          = "验证码已发送"
	msgDevCode          = "开发模式验证码：%s"
	msgLoginOK          = "登录成功"
	msgLogoutOK         = "已退出登录"
	msgSampleRequired   = "请输入样品名称"
	msgAddressRequired  = "请选择收货地址"
	msgQuantityInvalid  = "样品数量至少为1"
	msgOrderCreated     = "订单创建成功"
	msgPayMethodInvalid = "请选择支付方式"
	msgPaid             = "支付成功"
	msgPayInNewWindow   = "请在新窗口完成支付"
	msgReviewRequired   = "请输入评价内容"
	msgRatingInvalid    = "评分须在1到5之间"
	msgReviewOK         = "评价成功"
	msgTitleRequired    = "请输入发票抬头"
	msgEmailRequired    = "请输入接收邮箱"
	msgTaxIDRequired    = "请输入税号"
	msgInvoiceOK        = "发票申请已提交"
	msgProfileOK        = "资料更新成功"
)
