package domain

import "encoding/json"

// Money amounts arrive as JSON numbers (Decimal on the backend); they are kept
// as json.Number so no float rounding happens on the client.
type Money = json.Number

// User is the cached profile held by the session.
type User struct {
	ID           int64  `json:"id"`
	Phone        string `json:"phone,omitempty"`
	Nickname     string `json:"nickname,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	Email        string `json:"email,omitempty"`
	Balance      Money  `json:"balance,omitempty"`
	Points       int64  `json:"points,omitempty"`
	MemberLevel  string `json:"member_level,omitempty"`
	IsCertified  bool   `json:"is_certified,omitempty"`
	InviteCode   string `json:"invite_code,omitempty"`
	CreditLimit  Money  `json:"credit_limit,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	LastLoginAt  string `json:"last_login_at,omitempty"`
	Status       string `json:"status,omitempty"`
	WechatOpenID string `json:"wechat_openid,omitempty"`
}

// TokenResponse is returned by every login flavour.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Phone       string `json:"phone,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
}

type SMSResult struct {
	// Code is only populated by backends running in development mode.
	Code string `json:"code,omitempty"`
}

type ProfileUpdate struct {
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Balance struct {
	Balance       Money `json:"balance"`
	FrozenBalance Money `json:"frozen_balance,omitempty"`
	CreditLimit   Money `json:"credit_limit,omitempty"`
	UsedCredit    Money `json:"used_credit,omitempty"`
	Points        int64 `json:"points,omitempty"`
}

type Certification struct {
	RealName    string `json:"real_name"`
	IDCard      string `json:"id_card,omitempty"`
	Institution string `json:"institution,omitempty"`
	Department  string `json:"department,omitempty"`
	Status      string `json:"status,omitempty"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	ParentID    *int64 `json:"parent_id,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	IsHot       bool   `json:"is_hot,omitempty"`
}

type Project struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LabName       string `json:"lab_name,omitempty"`
	CategoryID    int64  `json:"category_id,omitempty"`
	OriginalPrice Money  `json:"original_price"`
	CurrentPrice  Money  `json:"current_price"`
	CoverImage    string `json:"cover_image,omitempty"`
	Satisfaction  Money  `json:"satisfaction,omitempty"`
	BookingCount  int64  `json:"booking_count,omitempty"`
	IsHot         bool   `json:"is_hot,omitempty"`
	IsRecommended bool   `json:"is_recommended,omitempty"`
}

type ProjectDetail struct {
	Project
	ProjectNo          string           `json:"project_no,omitempty"`
	LabID              int64            `json:"lab_id,omitempty"`
	CategoryName       string           `json:"category_name,omitempty"`
	ServiceCycleMin    *int             `json:"service_cycle_min,omitempty"`
	ServiceCycleMax    *int             `json:"service_cycle_max,omitempty"`
	EquipmentName      string           `json:"equipment_name,omitempty"`
	EquipmentModel     string           `json:"equipment_model,omitempty"`
	Introduction       string           `json:"introduction,omitempty"`
	SampleRequirements string           `json:"sample_requirements,omitempty"`
	BookingNotice      string           `json:"booking_notice,omitempty"`
	DetailImages       []string         `json:"detail_images,omitempty"`
	FAQ                []map[string]any `json:"faq,omitempty"`
}

type Order struct {
	ID           int64  `json:"id"`
	OrderNo      string `json:"order_no"`
	ProjectID    int64  `json:"project_id,omitempty"`
	ProjectName  string `json:"project_name"`
	ProjectImage string `json:"project_image,omitempty"`
	LabName      string `json:"lab_name,omitempty"`
	Status       string `json:"status"`
	TotalFee     Money  `json:"total_fee"`
	SampleCount  int    `json:"sample_count"`
	CreatedAt    string `json:"created_at"`
}

type OrderSample struct {
	ID                  int64          `json:"id,omitempty"`
	SampleName          string         `json:"sample_name"`
	SampleType          string         `json:"sample_type,omitempty"`
	SampleDesc          string         `json:"sample_desc,omitempty"`
	Quantity            int            `json:"quantity"`
	Photos              []string       `json:"photos,omitempty"`
	TestParams          map[string]any `json:"test_params,omitempty"`
	SpecialRequirements string         `json:"special_requirements,omitempty"`
}

type OrderDetail struct {
	Order
	ProjectFee              Money         `json:"project_fee,omitempty"`
	UrgentFee               Money         `json:"urgent_fee,omitempty"`
	ShippingFee             Money         `json:"shipping_fee,omitempty"`
	DiscountAmount          Money         `json:"discount_amount,omitempty"`
	PaidFee                 Money         `json:"paid_fee,omitempty"`
	ShippingMethod          string        `json:"shipping_method,omitempty"`
	ReceiverName            string        `json:"receiver_name,omitempty"`
	ReceiverPhone           string        `json:"receiver_phone,omitempty"`
	ReceiverAddress         string        `json:"receiver_address,omitempty"`
	PaymentMethod           string        `json:"payment_method,omitempty"`
	PaidAt                  string        `json:"paid_at,omitempty"`
	CompletedAt             string        `json:"completed_at,omitempty"`
	CancelledAt             string        `json:"cancelled_at,omitempty"`
	CancelReason            string        `json:"cancel_reason,omitempty"`
	Remark                  string        `json:"remark,omitempty"`
	IsUrgent                bool          `json:"is_urgent,omitempty"`
	EstimatedCompletionTime string        `json:"estimated_completion_time,omitempty"`
	Samples                 []OrderSample `json:"samples,omitempty"`
}

// OrderCreate is the booking form as sent to orders/create.
type OrderCreate struct {
	ProjectID      int64         `json:"project_id"`
	SampleName     string        `json:"sample_name,omitempty"`
	Quantity       int           `json:"quantity,omitempty"`
	Samples        []OrderSample `json:"samples,omitempty"`
	ShippingMethod string        `json:"shipping_method,omitempty"`
	AddressID      *int64        `json:"address_id,omitempty"`
	CouponID       *int64        `json:"coupon_id,omitempty"`
	UsePoints      int           `json:"use_points,omitempty"`
	IsUrgent       bool          `json:"is_urgent,omitempty"`
	Remark         string        `json:"remark,omitempty"`
}

type OrderCalculate struct {
	ProjectID      int64  `json:"project_id"`
	SampleCount    int    `json:"sample_count"`
	IsUrgent       bool   `json:"is_urgent"`
	ShippingMethod string `json:"shipping_method"`
	CouponID       *int64 `json:"coupon_id,omitempty"`
	UsePoints      int    `json:"use_points"`
}

type FeeDetail struct {
	FeeType string `json:"fee_type"`
	FeeName string `json:"fee_name"`
	Amount  Money  `json:"amount"`
}

type OrderQuote struct {
	ProjectFee     Money       `json:"project_fee"`
	UrgentFee      Money       `json:"urgent_fee"`
	ShippingFee    Money       `json:"shipping_fee"`
	DiscountAmount Money       `json:"discount_amount"`
	TotalFee       Money       `json:"total_fee"`
	FeeDetails     []FeeDetail `json:"fee_details,omitempty"`
}

// CreatedOrder is what orders/create returns; it feeds the payment modal.
type CreatedOrder struct {
	ID       int64  `json:"id"`
	OrderNo  string `json:"order_no"`
	TotalFee Money  `json:"total_fee"`
	Status   string `json:"status,omitempty"`
}

type PaymentResult struct {
	PaymentNo string `json:"payment_no,omitempty"`
	PayURL    string `json:"pay_url,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Address struct {
	ID            int64  `json:"id,omitempty"`
	ReceiverName  string `json:"receiver_name"`
	Phone         string `json:"phone"`
	Province      string `json:"province"`
	City          string `json:"city"`
	District      string `json:"district,omitempty"`
	DetailAddress string `json:"detail_address"`
	IsDefault     bool   `json:"is_default"`
}

type UserCoupon struct {
	ID            int64  `json:"id"`
	CouponID      int64  `json:"coupon_id,omitempty"`
	CouponName    string `json:"coupon_name"`
	CouponType    string `json:"coupon_type,omitempty"`
	DiscountValue Money  `json:"discount_value,omitempty"`
	MinAmount     Money  `json:"min_order_amount,omitempty"`
	Status        string `json:"status,omitempty"`
	ExpireAt      string `json:"expire_at,omitempty"`
}

type Favorite struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	Project   Project `json:"project,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

type FavoriteCheck struct {
	IsFavorite bool `json:"is_favorite"`
}

type Review struct {
	ID             int64    `json:"id"`
	ProjectID      int64    `json:"project_id"`
	OrderID        int64    `json:"order_id"`
	Rating         int      `json:"rating,omitempty"`
	Content        string   `json:"content"`
	Tags           []string `json:"tags,omitempty"`
	Images         []string `json:"images,omitempty"`
	IsAnonymous    bool     `json:"is_anonymous,omitempty"`
	ReplyContent   string   `json:"reply_content,omitempty"`
	UserNickname   string   `json:"user_nickname,omitempty"`
	ProjectName    string   `json:"project_name,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// ReviewCreate carries the per-dimension ratings the backend expects.
type ReviewCreate struct {
	OrderID         int64  `json:"order_id"`
	ServiceRating   int    `json:"service_rating"`
	QualityRating   int    `json:"quality_rating"`
	LogisticsRating int    `json:"logistics_rating"`
	Content         string `json:"content"`
}

type RechargeRequest struct {
	Amount        Money  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
}

type RechargeRecord struct {
	ID            int64  `json:"id"`
	RechargeNo    string `json:"recharge_no,omitempty"`
	Amount        Money  `json:"amount"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Status        string `json:"status"`
	PayURL        string `json:"pay_url,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

type InvoiceApply struct {
	OrderIDs    []int64 `json:"order_ids"`
	Amount      Money   `json:"amount,omitempty"`
	InvoiceType string  `json:"invoice_type"`
	Title       string  `json:"title"`
	TaxID       string  `json:"tax_id,omitempty"`
	Email       string  `json:"email"`
}

type Invoice struct {
	ID          int64  `json:"id"`
	InvoiceNo   string `json:"invoice_no,omitempty"`
	InvoiceType string `json:"invoice_type"`
	Title       string `json:"title"`
	Amount      Money  `json:"amount"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type PointsGoods struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	PointsPrice int64  `json:"points_price"`
	Stock       int64  `json:"stock"`
	Description string `json:"description,omitempty"`
}

type PointsExchange struct {
	GoodsID  int64 `json:"goods_id"`
	Quantity int   `json:"quantity"`
}

type PointsRecord struct {
	ID          int64  `json:"id"`
	Points      int64  `json:"points"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type Group struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	InviteCode  string `json:"invite_code,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type InviteRecord struct {
	ID              int64  `json:"id"`
	InviteeNickname string `json:"invitee_nickname,omitempty"`
	InviteePhone    string `json:"invitee_phone,omitempty"`
	Reward          Money  `json:"reward,omitempty"`
	Status          string `json:"status,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

type InviteStats struct {
	TotalInvites    int64 `json:"total_invites"`
	TotalReward     Money `json:"total_reward"`
	AvailableReward Money `json:"available_reward"`
}

type WithdrawRequest struct {
	Amount  Money  `json:"amount"`
	Account string `json:"account,omitempty"`
}

type Banner struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	Image      string `json:"image"`
	Link       string `json:"link,omitempty"`
	ButtonText string `json:"button_text,omitempty"`
}

type Announcement struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type HelpCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type HelpArticle struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id,omitempty"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
}

type ChatMessage struct {
	ID        int64  `json:"id,omitempty"`
	Content   string `json:"content"`
	Sender    string `json:"sender,omitempty"` // user or service
	CreatedAt string `json:"created_at,omitempty"`
}

type Report struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"order_id"`
	OrderNo     string `json:"order_no,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ReportFile is a downloaded report body.
type ReportFile struct {
	ContentType string
	FileName    string
	Body        []byte
}

type SampleEvent struct {
	Status    string `json:"status"`
	Desc      string `json:"desc,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type SampleStatus struct {
	OrderID  int64         `json:"order_id"`
	OrderNo  string        `json:"order_no,omitempty"`
	Status   string        `json:"status"`
	Timeline []SampleEvent `json:"timeline,omitempty"`
}

type LotteryPrize struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Type  string `json:"type,omitempty"`
}

type LotteryInfo struct {
	Chances    int            `json:"chances"`
	CostPoints int64          `json:"cost_points,omitempty"`
	Prizes     []LotteryPrize `json:"prizes,omitempty"`
	Rules      string         `json:"rules,omitempty"`
}

type LotteryResult struct {
	PrizeID   int64  `json:"prize_id,omitempty"`
	PrizeName string `json:"prize_name"`
	IsWin     bool   `json:"is_win"`
}

type LotteryRecord struct {
	ID        int64  `json:"id"`
	PrizeName string `json:"prize_name"`
	CreatedAt string `json:"created_at,omitempty"`
}
