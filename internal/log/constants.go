package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyRequestProcessedAt = "requestProcessedAt"
	KeyUserID             = "userId"
	KeyCacheKey           = "cacheKey"
	KeyCart               = "cart"
	KeyCartItems          = "cartItems"
	KeyCartItemsCount     = "cartItemsCount"
	KeyCartQuantity       = "cartQuantity"
	KeyCartTotalPrice     = "cartTotalPrice"
	KeyProductID          = "productId"
	KeyProduct            = "product"
	KeyInCart             = "inCart"
	KeyPayload            = "payload"
	KeyPayloadSize        = "payloadSize"
	KeyElementID          = "elementId"
	KeyMainButtonState    = "mainButtonState"
	KeyWebhookURL         = "webhookUrl"
	KeyStatusCode         = "statusCode"
)
