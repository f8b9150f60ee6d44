package companion

import (
	"context"
	"fmt"
)

// Static resolves companion libraries from built-in export lists. It never
// touches the filesystem and is the fallback when package lookup fails.
type Static map[string][]string

// DefaultStatic returns the built-in lists keyed by origin group
func DefaultStatic() Static {
	return Static{
		Nitro.Group: append([]string{}, nitroExports...),
		H3.Group:    append([]string{}, h3Exports...),
	}
}

// Resolve implements Resolver
func (s Static) Resolve(_ context.Context, lib Library) ([]string, error) {
	names, ok := s[lib.Group]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLibrary, lib.Group)
	}
	return append([]string{}, names...), nil
}

var nitroExports = []string{
	"defineCachedFunction", "defineCachedEventHandler", "cachedFunction", "cachedEventHandler",
	"useRuntimeConfig", "useStorage", "useNitroApp", "defineNitroPlugin", "nitroPlugin",
	"defineRenderHandler", "getRouteRules", "useAppConfig", "useEvent",
}

var h3Exports = []string{
	"appendCorsHeaders", "appendCorsPreflightHeaders", "appendHeader", "appendHeaders",
	"appendResponseHeader", "appendResponseHeaders", "assertMethod", "callNodeListener",
	"clearResponseHeaders", "clearSession", "createApp", "createAppEventHandler", "createError",
	"createEvent", "createEventStream", "createRouter", "defaultContentType", "defineEventHandler",
	"defineLazyEventHandler", "defineNodeListener", "defineNodeMiddleware", "defineRequestMiddleware",
	"defineResponseMiddleware", "defineWebSocket", "deleteCookie", "dynamicEventHandler", "eventHandler",
	"fetchWithEvent", "fromNodeMiddleware", "fromPlainHandler", "fromWebHandler", "getCookie",
	"getHeader", "getHeaders", "getMethod", "getProxyRequestHeaders", "getQuery", "getRequestHeader",
	"getRequestHeaders", "getRequestHost", "getRequestIP", "getRequestPath", "getRequestProtocol",
	"getRequestURL", "getRequestWebStream", "getResponseHeader", "getResponseHeaders",
	"getResponseStatus", "getResponseStatusText", "getRouterParam", "getRouterParams", "getSession",
	"getValidatedQuery", "handleCacheHeaders", "handleCors", "isCorsOriginAllowed", "isError",
	"isEvent", "isEventHandler", "isMethod", "isPreflightRequest", "isStream", "isWebResponse",
	"lazyEventHandler", "parseCookies", "promisifyNodeListener", "proxyRequest", "readBody",
	"readFormData", "readMultipartFormData", "readRawBody", "readValidatedBody",
	"removeResponseHeader", "sanitizeStatusCode", "sanitizeStatusMessage", "sealSession", "send",
	"sendError", "sendNoContent", "sendProxy", "sendRedirect", "sendStream", "sendWebResponse",
	"serveStatic", "setCookie", "setHeader", "setHeaders", "setResponseHeader", "setResponseHeaders",
	"setResponseStatus", "splitCookiesString", "toEventHandler", "toNodeListener", "toPlainHandler",
	"toWebHandler", "toWebRequest", "unsealSession", "updateSession", "useBase", "useSession",
	"writeEarlyHints",
}
