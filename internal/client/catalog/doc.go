// Package catalog is the gateway to the TMDB catalog: list shelves, search,
// title details and image URLs. Responses can be cached in redis.
package catalog
