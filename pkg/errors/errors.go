package errors

import "errors"

// ErrOptimisticLock the row was changed by someone else since it was read
var ErrOptimisticLock = errors.New("تم تعديل البيانات من قبل عملية أخرى، يرجى التحديث والمحاولة مجدداً")
