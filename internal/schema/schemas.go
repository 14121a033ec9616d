package schema

// resourceSchemas holds the hand-kept schemas for the resource types the
// Jenkins topology renders. The surface is fixed; a type missing here is an
// assembler defect, not a gap in coverage.
var resourceSchemas = map[string]ResourceSchema{
	"AWS::ECS::Cluster": {
		Type: "AWS::ECS::Cluster",
		Properties: map[string]PropertySchema{
			"ClusterName":     {Type: "String"},
			"ClusterSettings": {Type: "List"},
			"Tags":            {Type: "List"},
		},
	},
	"AWS::ECS::TaskDefinition": {
		Type:     "AWS::ECS::TaskDefinition",
		Required: []string{"ContainerDefinitions"},
		Properties: map[string]PropertySchema{
			"Family":                  {Type: "String"},
			"Cpu":                     {Type: "String"},
			"Memory":                  {Type: "String"},
			"NetworkMode":             {Type: "String", AllowedValues: []string{"awsvpc", "bridge", "host", "none"}},
			"RequiresCompatibilities": {Type: "List"},
			"ExecutionRoleArn":        {Type: "String"},
			"TaskRoleArn":             {Type: "String"},
			"ContainerDefinitions":    {Type: "List", Required: true},
			"Volumes":                 {Type: "List"},
			"Tags":                    {Type: "List"},
		},
	},
	"AWS::ECS::Service": {
		Type: "AWS::ECS::Service",
		Properties: map[string]PropertySchema{
			"ServiceName":                   {Type: "String"},
			"Cluster":                       {Type: "String"},
			"TaskDefinition":                {Type: "String"},
			"DesiredCount":                  {Type: "Integer"},
			"LaunchType":                    {Type: "String", AllowedValues: []string{"EC2", "FARGATE", "EXTERNAL"}},
			"PlatformVersion":               {Type: "String"},
			"HealthCheckGracePeriodSeconds": {Type: "Integer"},
			"DeploymentConfiguration":       {Type: "Map"},
			"NetworkConfiguration":          {Type: "Map"},
			"LoadBalancers":                 {Type: "List"},
			"EnableECSManagedTags":          {Type: "Boolean"},
			"PropagateTags":                 {Type: "String"},
			"Tags":                          {Type: "List"},
		},
	},
	"AWS::EFS::FileSystem": {
		Type: "AWS::EFS::FileSystem",
		Properties: map[string]PropertySchema{
			"Encrypted":       {Type: "Boolean"},
			"PerformanceMode": {Type: "String", AllowedValues: []string{"generalPurpose", "maxIO"}},
			"FileSystemTags":  {Type: "List"},
		},
	},
	"AWS::EFS::AccessPoint": {
		Type:     "AWS::EFS::AccessPoint",
		Required: []string{"FileSystemId"},
		Properties: map[string]PropertySchema{
			"FileSystemId":    {Type: "String", Required: true},
			"PosixUser":       {Type: "Map"},
			"RootDirectory":   {Type: "Map"},
			"AccessPointTags": {Type: "List"},
		},
	},
	"AWS::EFS::MountTarget": {
		Type:     "AWS::EFS::MountTarget",
		Required: []string{"FileSystemId", "SubnetId", "SecurityGroups"},
		Properties: map[string]PropertySchema{
			"FileSystemId":   {Type: "String", Required: true},
			"SubnetId":       {Type: "String", Required: true},
			"SecurityGroups": {Type: "List", Required: true},
		},
	},
	"AWS::ElasticLoadBalancingV2::LoadBalancer": {
		Type: "AWS::ElasticLoadBalancingV2::LoadBalancer",
		Properties: map[string]PropertySchema{
			"Name":           {Type: "String"},
			"Scheme":         {Type: "String", AllowedValues: []string{"internet-facing", "internal"}},
			"Type":           {Type: "String", AllowedValues: []string{"application", "network", "gateway"}},
			"Subnets":        {Type: "List"},
			"SecurityGroups": {Type: "List"},
			"Tags":           {Type: "List"},
		},
	},
	"AWS::ElasticLoadBalancingV2::Listener": {
		Type:     "AWS::ElasticLoadBalancingV2::Listener",
		Required: []string{"LoadBalancerArn", "DefaultActions"},
		Properties: map[string]PropertySchema{
			"LoadBalancerArn": {Type: "String", Required: true},
			"Port":            {Type: "Integer"},
			"Protocol":        {Type: "String", AllowedValues: []string{"HTTP", "HTTPS", "TCP", "TLS", "UDP", "TCP_UDP", "GENEVE"}},
			"DefaultActions":  {Type: "List", Required: true},
			"Tags":            {Type: "List"},
		},
	},
	"AWS::ElasticLoadBalancingV2::TargetGroup": {
		Type: "AWS::ElasticLoadBalancingV2::TargetGroup",
		Properties: map[string]PropertySchema{
			"Name":                       {Type: "String"},
			"Port":                       {Type: "Integer"},
			"Protocol":                   {Type: "String"},
			"TargetType":                 {Type: "String", AllowedValues: []string{"instance", "ip", "lambda", "alb"}},
			"VpcId":                      {Type: "String"},
			"HealthCheckPath":            {Type: "String"},
			"HealthCheckProtocol":        {Type: "String"},
			"HealthyThresholdCount":      {Type: "Integer"},
			"UnhealthyThresholdCount":    {Type: "Integer"},
			"HealthCheckIntervalSeconds": {Type: "Integer"},
			"Matcher":                    {Type: "Map"},
			"TargetGroupAttributes":      {Type: "List"},
			"Tags":                       {Type: "List"},
		},
	},
	"AWS::EC2::SecurityGroup": {
		Type:     "AWS::EC2::SecurityGroup",
		Required: []string{"GroupDescription"},
		Properties: map[string]PropertySchema{
			"GroupName":            {Type: "String"},
			"GroupDescription":     {Type: "String", Required: true},
			"VpcId":                {Type: "String"},
			"SecurityGroupIngress": {Type: "List"},
			"SecurityGroupEgress":  {Type: "List"},
			"Tags":                 {Type: "List"},
		},
	},
	"AWS::IAM::Role": {
		Type:     "AWS::IAM::Role",
		Required: []string{"AssumeRolePolicyDocument"},
		Properties: map[string]PropertySchema{
			"RoleName":                 {Type: "String"},
			"AssumeRolePolicyDocument": {Type: "Json", Required: true},
			"ManagedPolicyArns":        {Type: "List"},
			"Policies":                 {Type: "List"},
			"Tags":                     {Type: "List"},
		},
	},
	"AWS::Logs::LogGroup": {
		Type: "AWS::Logs::LogGroup",
		Properties: map[string]PropertySchema{
			"LogGroupName":    {Type: "String"},
			"RetentionInDays": {Type: "Integer"},
			"Tags":            {Type: "List"},
		},
	},
}
