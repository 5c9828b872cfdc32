package repository

import "errors"

// 見つからない（または呼び出し元の所有ではない）
var ErrNotFound = errors.New("not found")

// 一意制約違反（email重複、レストラン名重複など）
var ErrDuplicate = errors.New("duplicate")
