// Package errors: 봇 서비스 전체에서 사용되는 에러 타입들을 정의한다.
// 표준 Go 에러 스타일(Unwrap 체인)을 따른다.
package errors

import "fmt"

// APIError: 외부 API 호출 중 발생한 에러 (Last.fm, iTunes, MusicBrainz, Spotify)
type APIError struct {
	Service    string // 대상 서비스 이름
	Operation  string // 수행 중이던 API 작업
	StatusCode int    // HTTP 상태 코드 (0이면 네트워크 오류)
	Err        error  // 원인 에러
}

func (e APIError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("api error service=%s operation=%s status=%d", e.Service, e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("api error service=%s operation=%s status=%d: %v", e.Service, e.Operation, e.StatusCode, e.Err)
}

func (e APIError) Unwrap() error { return e.Err }

// NewAPIError: API 에러를 생성한다.
func NewAPIError(service, operation string, statusCode int, cause error) *APIError {
	return &APIError{
		Service:    service,
		Operation:  operation,
		StatusCode: statusCode,
		Err:        cause,
	}
}

// CacheError: KV 스토어 작업 중 발생한 에러
type CacheError struct {
	Operation string // get, set, scan 등
	Key       string // 대상 키
	Err       error  // 원인 에러
}

func (e CacheError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cache error operation=%s key=%s", e.Operation, e.Key)
	}
	return fmt.Sprintf("cache error operation=%s key=%s: %v", e.Operation, e.Key, e.Err)
}

func (e CacheError) Unwrap() error { return e.Err }

// NewCacheError: KV 스토어 에러를 생성한다.
func NewCacheError(operation, key string, cause error) *CacheError {
	return &CacheError{
		Operation: operation,
		Key:       key,
		Err:       cause,
	}
}

// NoMatchError: 메타데이터 조회는 성공했으나 일치하는 레코드가 없을 때 발생하는 에러.
// Attempted에는 시도한 질의 문자열이 모두 담긴다. (정규화 재시도 포함)
type NoMatchError struct {
	Service   string
	Attempted []string
}

func (e NoMatchError) Error() string {
	return fmt.Sprintf("no match service=%s attempted=%v", e.Service, e.Attempted)
}

// NewNoMatchError: 결과 없음 에러를 생성한다.
func NewNoMatchError(service string, attempted []string) *NoMatchError {
	return &NoMatchError{Service: service, Attempted: attempted}
}

// ValidationError: 입력 검증 실패 에러
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error field=%s: %s", e.Field, e.Message)
}

// NewValidationError: 검증 에러를 생성한다.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ServiceError: 내부 서비스 로직 에러
type ServiceError struct {
	Service   string // 서비스 이름
	Operation string // 작업 이름
	Err       error  // 원인 에러
}

func (e ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("service error service=%s operation=%s", e.Service, e.Operation)
	}
	return fmt.Sprintf("service error service=%s operation=%s: %v", e.Service, e.Operation, e.Err)
}

func (e ServiceError) Unwrap() error { return e.Err }

// NewServiceError: 서비스 에러를 생성한다.
func NewServiceError(service, operation string, cause error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Err:       cause,
	}
}
