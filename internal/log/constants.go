package log

const (
	KeyAppName       = "app"
	KeyCacheKey      = "cacheKey"
	KeyCart          = "cart"
	KeyCartTotal     = "cartTotal"
	KeyConfig        = "config"
	KeyDbURL         = "dbUrl"
	KeyOrderID       = "orderId"
	KeyProcess       = "process"
	KeyProductCount  = "productCount"
	KeyProductID     = "productId"
	KeyQuantity      = "quantity"
	KeyReceipt       = "receipt"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestID     = "requestId"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyTag           = "tag"
)
