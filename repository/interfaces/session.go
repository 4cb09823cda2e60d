package interfaces

//定义数据库连接会话接口，一次生命周期操作对应一个事务
type Session interface {
	Begin() error
	Close() error
	Commit() error
	Rollback() error
}
