// Package efs provides CloudFormation resource types for Amazon EFS.
//
// Only the types rendered by the Jenkins topology are defined.
package efs

// FileSystem represents an AWS::EFS::FileSystem resource.
type FileSystem struct {
	Encrypted       bool
	PerformanceMode string
	FileSystemTags  []any
}

// ResourceType returns the CloudFormation type for FileSystem.
func (FileSystem) ResourceType() string { return "AWS::EFS::FileSystem" }

// AccessPoint represents an AWS::EFS::AccessPoint resource.
type AccessPoint struct {
	FileSystemId    any
	PosixUser       any
	RootDirectory   any
	AccessPointTags []any
}

// ResourceType returns the CloudFormation type for AccessPoint.
func (AccessPoint) ResourceType() string { return "AWS::EFS::AccessPoint" }

// AccessPoint_PosixUser is the POSIX identity applied to access through the access point.
type AccessPoint_PosixUser struct {
	Uid string
	Gid string
}

// AccessPoint_RootDirectory scopes the access point to a file system subdirectory.
type AccessPoint_RootDirectory struct {
	Path         string
	CreationInfo any
}

// AccessPoint_CreationInfo sets ownership and mode for the root directory.
type AccessPoint_CreationInfo struct {
	OwnerUid    string
	OwnerGid    string
	Permissions string
}

// MountTarget represents an AWS::EFS::MountTarget resource.
// Mount targets do not support tags in CloudFormation.
type MountTarget struct {
	FileSystemId   any
	SubnetId       any
	SecurityGroups []any
}

// ResourceType returns the CloudFormation type for MountTarget.
func (MountTarget) ResourceType() string { return "AWS::EFS::MountTarget" }
