package model

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (e Role) String() string { return string(e) }

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

func (e OrderStatus) String() string { return string(e) }

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

func (e PaymentStatus) String() string { return string(e) }

type ShippingStatus string

const (
	ShippingStatusPending    ShippingStatus = "PENDING"
	ShippingStatusProcessing ShippingStatus = "PROCESSING"
	ShippingStatusShipped    ShippingStatus = "SHIPPED"
	ShippingStatusInTransit  ShippingStatus = "IN_TRANSIT"
	ShippingStatusDelivered  ShippingStatus = "DELIVERED"
	ShippingStatusReturned   ShippingStatus = "RETURNED"
)

func (e ShippingStatus) String() string { return string(e) }

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodCod          PaymentMethod = "COD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodEWallet      PaymentMethod = "E_WALLET"
)

func (e PaymentMethod) String() string { return string(e) }

type CompanyStatus string

const (
	CompanyStatusPending   CompanyStatus = "PENDING"
	CompanyStatusActive    CompanyStatus = "ACTIVE"
	CompanyStatusSuspended CompanyStatus = "SUSPENDED"
	CompanyStatusRejected  CompanyStatus = "REJECTED"
)

func (e CompanyStatus) String() string { return string(e) }
