package decode

// Pre-compressed copies of sampleContent for the codecs Go has no writer for.

// sampleContent compressed with bzip2 -9.
var bzip2Content = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0x07, 0x07,
	0xae, 0x44, 0x00, 0x00, 0x06, 0x5f, 0x80, 0x00, 0x10, 0x40, 0x62, 0x00,
	0x08, 0x3a, 0x04, 0x7c, 0x00, 0x36, 0xa3, 0xde, 0x00, 0x20, 0x00, 0x54,
	0x50, 0x98, 0x00, 0xd2, 0x60, 0x26, 0x4f, 0x43, 0x19, 0xa6, 0x89, 0xe8,
	0x9b, 0x48, 0x79, 0x4d, 0x19, 0x32, 0x0d, 0xbe, 0x84, 0x96, 0x7d, 0x81,
	0x61, 0xf1, 0xdd, 0x5e, 0x6e, 0x02, 0x44, 0xe6, 0x4a, 0x86, 0x11, 0x3a,
	0xf1, 0x51, 0xf5, 0x98, 0x62, 0xb4, 0x5d, 0x0f, 0x36, 0xb6, 0x44, 0xaf,
	0xc1, 0x50, 0x42, 0x48, 0x13, 0x80, 0x74, 0x5d, 0xc9, 0x14, 0xe1, 0x42,
	0x40, 0x1c, 0x1e, 0xb9, 0x10,
}

// A 7z archive holding sampleContent as its only member, dump.sql, stored
// with the Copy method.
var sevenZipContent = []byte{
	0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c, 0x00, 0x04, 0x6d, 0x09, 0xbb, 0xe1,
	0x3d, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x32, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0xa9, 0x15, 0xb5, 0x2d, 0x2d, 0x20, 0x50,
	0x6f, 0x73, 0x74, 0x67, 0x72, 0x65, 0x53, 0x51, 0x4c, 0x20, 0x64, 0x61,
	0x74, 0x61, 0x62, 0x61, 0x73, 0x65, 0x20, 0x64, 0x75, 0x6d, 0x70, 0x0a,
	0x43, 0x52, 0x45, 0x41, 0x54, 0x45, 0x20, 0x54, 0x41, 0x42, 0x4c, 0x45,
	0x20, 0x6f, 0x72, 0x64, 0x65, 0x72, 0x73, 0x20, 0x28, 0x69, 0x64, 0x20,
	0x62, 0x69, 0x67, 0x69, 0x6e, 0x74, 0x29, 0x3b, 0x0a, 0x01, 0x04, 0x06,
	0x00, 0x01, 0x09, 0x3d, 0x00, 0x07, 0x0b, 0x01, 0x00, 0x01, 0x01, 0x00,
	0x0c, 0x3d, 0x0a, 0x01, 0x9c, 0x3c, 0x59, 0xb5, 0x00, 0x00, 0x05, 0x01,
	0x11, 0x13, 0x00, 0x64, 0x00, 0x75, 0x00, 0x6d, 0x00, 0x70, 0x00, 0x2e,
	0x00, 0x73, 0x00, 0x71, 0x00, 0x6c, 0x00, 0x00, 0x00, 0x00, 0x00,
}
