package cache

const KeyProductsRecent = "products:recent"
