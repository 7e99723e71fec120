// Package store 提供 core.Store / core.KeyValueStore 的具体实现。
//
// 推荐服务用它做两件事：
//   - 缓存推荐接口的响应（带 TTL 的 Get/Set）
//   - 维护热门商品榜单（ZAdd/ZRange 有序集合）
//
// 接口定义在 core 包，此包只含实现：
//
//	var s core.KeyValueStore = store.NewMemory()
package store
